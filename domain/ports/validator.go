package ports

import "github.com/reglet-dev/reglet-permissions/domain/entities"

// GrantsValidator checks a decoded grants document before it is used.
type GrantsValidator interface {
	// Validate checks doc (generic JSON-compatible data) against the grants schema.
	Validate(doc any) (*entities.ValidationResult, error)
}
