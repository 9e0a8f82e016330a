package ports

import "github.com/reglet-dev/reglet-permissions/domain/entities"

// GrantStore provides the initial grant table for a host.
type GrantStore interface {
	// Load retrieves all granted patterns.
	// Returns empty GrantSet (not error) if no grants exist.
	Load() (*entities.GrantSet, error)

	// ConfigPath returns the path to the backing store (for user messaging).
	ConfigPath() string
}
