// Package schema provides JSON schema generation for grants files.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
)

// GrantsSchemaURL identifies the grants file schema when it is registered
// with a validator.
const GrantsSchemaURL = "https://reglet.dev/schemas/grants.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// GrantsSchema returns the schema of a grants file: an object with one
// optional list of scope patterns per capability kind and nothing else.
func GrantsSchema() ([]byte, error) {
	return GenerateSchema(&entities.GrantSet{})
}
