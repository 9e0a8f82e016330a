package ports

import (
	"context"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
)

// Prompter handles interactive permission decisions for a host.
type Prompter interface {
	// IsInteractive returns true if an operator can answer prompts.
	IsInteractive() bool

	// PromptForDescriptor asks the operator whether to grant d.
	PromptForDescriptor(ctx context.Context, d entities.Descriptor) (granted bool, err error)
}
