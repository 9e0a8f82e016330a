package ports

import "github.com/reglet-dev/reglet-permissions/domain/entities"

// DenialHandler is called when a policy check denies a descriptor.
// Implementations can log, collect metrics, or take other actions.
type DenialHandler interface {
	OnDenial(d entities.Descriptor, reason string)
}
