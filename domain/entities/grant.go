package entities

// AllScopes is the pattern that grants a whole kind. It is what an unscoped
// --allow-<kind> flag means.
const AllScopes = "**"

// GrantSet is the host-side table of granted scope patterns, one list per kind.
// Patterns use doublestar glob syntax.
type GrantSet struct {
	Read   []string `json:"read,omitempty" yaml:"read,omitempty" jsonschema:"description=Paths readable by the process"`
	Write  []string `json:"write,omitempty" yaml:"write,omitempty" jsonschema:"description=Paths writable by the process"`
	FFI    []string `json:"ffi,omitempty" yaml:"ffi,omitempty" jsonschema:"description=Native libraries the process may load"`
	Net    []string `json:"net,omitempty" yaml:"net,omitempty" jsonschema:"description=Hosts the process may connect to"`
	Import []string `json:"import,omitempty" yaml:"import,omitempty" jsonschema:"description=Hosts the process may import modules from"`
	Run    []string `json:"run,omitempty" yaml:"run,omitempty" jsonschema:"description=Commands the process may spawn"`
	Env    []string `json:"env,omitempty" yaml:"env,omitempty" jsonschema:"description=Environment variables the process may access"`
	Sys    []string `json:"sys,omitempty" yaml:"sys,omitempty" jsonschema:"description=System information the process may query"`
}

func (g *GrantSet) field(kind Kind) *[]string {
	switch kind {
	case KindRead:
		return &g.Read
	case KindWrite:
		return &g.Write
	case KindFFI:
		return &g.FFI
	case KindNet:
		return &g.Net
	case KindImport:
		return &g.Import
	case KindRun:
		return &g.Run
	case KindEnv:
		return &g.Env
	case KindSys:
		return &g.Sys
	default:
		return nil
	}
}

// Patterns returns the granted patterns for kind.
func (g *GrantSet) Patterns(kind Kind) []string {
	if g == nil {
		return nil
	}
	f := g.field(kind)
	if f == nil {
		return nil
	}
	return *f
}

// Allow records d as granted. An unscoped descriptor grants AllScopes.
// Duplicate patterns are ignored.
func (g *GrantSet) Allow(d Descriptor) {
	f := g.field(d.Name())
	if f == nil {
		return
	}
	pattern := d.Scope()
	if pattern == "" {
		pattern = AllScopes
	}
	for _, existing := range *f {
		if existing == pattern {
			return
		}
	}
	*f = append(*f, pattern)
}

// IsEmpty returns true if no kind has any pattern.
func (g *GrantSet) IsEmpty() bool {
	if g == nil {
		return true
	}
	for _, kind := range knownKinds {
		if len(*g.field(kind)) > 0 {
			return false
		}
	}
	return true
}

// Merge unions other into g.
func (g *GrantSet) Merge(other *GrantSet) {
	if other == nil {
		return
	}
	for _, d := range other.Descriptors() {
		g.Allow(d)
	}
}

// Clone returns a deep copy of the GrantSet.
func (g *GrantSet) Clone() *GrantSet {
	if g == nil {
		return nil
	}
	clone := &GrantSet{}
	for _, kind := range knownKinds {
		if src := *g.field(kind); src != nil {
			*clone.field(kind) = append([]string(nil), src...)
		}
	}
	return clone
}

// Descriptors lists one descriptor per granted pattern, kinds in canonical
// order. AllScopes becomes an unscoped descriptor.
func (g *GrantSet) Descriptors() []Descriptor {
	if g == nil {
		return nil
	}
	var out []Descriptor
	for _, kind := range knownKinds {
		for _, pattern := range *g.field(kind) {
			scope := pattern
			if scope == AllScopes {
				scope = ""
			}
			d, _ := NewDescriptor(kind, scope)
			out = append(out, d)
		}
	}
	return out
}
