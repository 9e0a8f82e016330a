package ports

import (
	"context"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
)

// PermissionHost is the host's permission subsystem. It owns all grant state.
// Implementations may block in Request while an operator answers a prompt.
type PermissionHost interface {
	// Query reports the current state of d without prompting.
	Query(ctx context.Context, d entities.Descriptor) (entities.PermissionStatus, error)

	// Request asks for d, prompting if the host is able to.
	// Returns an error for descriptors the host does not recognise.
	Request(ctx context.Context, d entities.Descriptor) (entities.PermissionStatus, error)
}
