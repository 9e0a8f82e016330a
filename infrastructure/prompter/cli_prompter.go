package prompter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

var _ ports.Prompter = (*CliPrompter)(nil)

// CliPrompter implements ports.Prompter for line-based terminals.
type CliPrompter struct {
	in          *bufio.Reader
	rawIn       io.Reader
	out         io.Writer
	interactive *bool
}

// CliOption configures a CliPrompter.
type CliOption func(*CliPrompter)

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) CliOption {
	return func(p *CliPrompter) {
		p.interactive = &interactive
	}
}

// NewCliPrompter creates a new CliPrompter.
func NewCliPrompter(in io.Reader, out io.Writer, opts ...CliOption) *CliPrompter {
	p := &CliPrompter{rawIn: in, out: out}
	if in != nil {
		p.in = bufio.NewReader(in)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsInteractive checks if the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	if p.interactive != nil {
		return *p.interactive
	}
	if f, ok := p.rawIn.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// PromptForDescriptor asks the operator to grant d. Anything but y/yes is a
// denial. End of input is reported as io.EOF.
func (p *CliPrompter) PromptForDescriptor(ctx context.Context, d entities.Descriptor) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.in == nil {
		return false, io.EOF
	}

	_, _ = fmt.Fprintf(p.out, "Permission request: %s\n", Describe(d))
	_, _ = fmt.Fprintf(p.out, "  flag: %s\n", flags.Render(d))
	if risk := Risk(d); risk != "" {
		_, _ = fmt.Fprintf(p.out, "  risk: %s\n", risk)
	}
	_, _ = fmt.Fprintf(p.out, "Allow? [y/N]: ")

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		// Default deny
		return false, nil
	}
}
