// Package validation checks grants documents against the generated schema.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reglet-dev/reglet-permissions/application/schema"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// GrantsValidator implements ports.GrantsValidator using JSON schemas.
type GrantsValidator struct {
	schema *jsonschema.Schema
}

// NewGrantsValidator compiles the grants schema.
func NewGrantsValidator() (ports.GrantsValidator, error) {
	raw, err := schema.GrantsSchema()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schema.GrantsSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add grants schema: %w", err)
	}
	sch, err := compiler.Compile(schema.GrantsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid grants schema: %w", err)
	}
	return &GrantsValidator{schema: sch}, nil
}

// Validate checks doc against the grants schema. Schema violations are
// reported in the result; the error is reserved for documents that cannot be
// converted to JSON at all.
func (v *GrantsValidator) Validate(doc any) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}
	if doc == nil {
		return result, nil
	}

	// Round-trip through JSON so the validator sees plain JSON types.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}

	if err := v.schema.Validate(obj); err != nil {
		result.Valid = false
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			for _, leaf := range leaves(ve) {
				result.Errors = append(result.Errors, entities.ValidationError{
					Field:   leaf.InstanceLocation,
					Message: leaf.Message,
				})
			}
		} else {
			result.Errors = append(result.Errors, entities.ValidationError{Message: err.Error()})
		}
	}

	return result, nil
}

// leaves flattens the cause tree to the errors that carry the actual reason.
func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}
