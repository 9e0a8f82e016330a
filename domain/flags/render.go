// Package flags converts capability descriptors to and from the host's
// command-line flag form: --allow-<kind> or --allow-<kind>=<value>.
//
// No escaping is performed. Callers embedding a flag in a shell command line
// must quote it themselves.
package flags

import "github.com/reglet-dev/reglet-permissions/domain/entities"

// Prefix starts every capability flag.
const Prefix = "--allow-"

// Render returns the flag that grants d at process start.
// An empty scope renders as the bare --allow-<kind> form.
func Render(d entities.Descriptor) string {
	flag := Prefix + d.Name().String()
	if scope := d.Scope(); scope != "" {
		flag += "=" + scope
	}
	return flag
}

// RenderAll renders each descriptor in order, one flag per descriptor.
func RenderAll(descriptors []entities.Descriptor) []string {
	out := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, Render(d))
	}
	return out
}
