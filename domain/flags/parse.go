package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
)

// ErrMalformedFlag is wrapped by Parse when the input is not an --allow- flag.
var ErrMalformedFlag = errors.New("malformed permission flag")

// Parse converts a single flag back into a descriptor. It accepts the forms
// produced by Render. The value after the first '=' is taken verbatim.
// Unknown kinds yield *entities.InvalidNameError.
func Parse(flag string) (entities.Descriptor, error) {
	rest, ok := strings.CutPrefix(flag, Prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedFlag, flag)
	}

	name, scope, _ := strings.Cut(rest, "=")
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedFlag, flag)
	}

	kind := entities.Kind(name)
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	d, _ := entities.NewDescriptor(kind, scope)
	return d, nil
}

// ParseAll parses flags in order. A comma separated value expands into one
// descriptor per element, the way the host reads --allow-read=a,b. Empty
// elements are skipped; a list with no elements at all is malformed.
func ParseAll(flags []string) ([]entities.Descriptor, error) {
	var out []entities.Descriptor
	for _, flag := range flags {
		d, err := Parse(flag)
		if err != nil {
			return nil, err
		}
		if !strings.Contains(d.Scope(), ",") {
			out = append(out, d)
			continue
		}
		expanded := 0
		for _, scope := range strings.Split(d.Scope(), ",") {
			if scope == "" {
				continue
			}
			item, _ := entities.NewDescriptor(d.Name(), scope)
			out = append(out, item)
			expanded++
		}
		if expanded == 0 {
			return nil, fmt.Errorf("%w: %q has an empty value list", ErrMalformedFlag, flag)
		}
	}
	return out, nil
}

// ToGrantSet parses flags into a host grant table.
func ToGrantSet(flags []string) (*entities.GrantSet, error) {
	descriptors, err := ParseAll(flags)
	if err != nil {
		return nil, err
	}
	g := &entities.GrantSet{}
	for _, d := range descriptors {
		g.Allow(d)
	}
	return g, nil
}
