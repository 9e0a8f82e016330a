package ports

import "github.com/reglet-dev/reglet-permissions/domain/entities"

// Policy decides whether a grant table covers a descriptor.
type Policy interface {
	Check(d entities.Descriptor, grants *entities.GrantSet) bool

	// Forget drops anything cached for grants. Callers that replace a grant
	// table call it on the old one.
	Forget(grants *entities.GrantSet)
}
