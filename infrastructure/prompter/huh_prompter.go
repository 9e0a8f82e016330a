package prompter

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

var _ ports.Prompter = (*HuhPrompter)(nil)

// HuhPrompter asks with a terminal confirm form. It is used when stdin is a TTY.
type HuhPrompter struct {
	accessible bool
	output     io.Writer
}

// NewHuhPrompter creates a HuhPrompter. Accessible mode renders plain text
// prompts for screen readers. Forms draw on stderr so stdout stays clean for
// command output.
func NewHuhPrompter(accessible bool) *HuhPrompter {
	return &HuhPrompter{accessible: accessible, output: os.Stderr}
}

// IsInteractive checks if stdin is a terminal.
func (p *HuhPrompter) IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// PromptForDescriptor shows a confirm form for d. Aborting the form denies.
func (p *HuhPrompter) PromptForDescriptor(ctx context.Context, d entities.Descriptor) (bool, error) {
	var allow bool
	description := flags.Render(d)
	if risk := Risk(d); risk != "" {
		description += "\n" + risk
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(Describe(d)).
			Description(description).
			Affirmative("Allow").
			Negative("Deny").
			Value(&allow),
	)).WithAccessible(p.accessible).WithOutput(p.output)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return allow, nil
}
