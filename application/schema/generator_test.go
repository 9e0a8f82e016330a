package schema

import (
	"encoding/json"
	"testing"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type SimpleConfig struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	schema, err := GenerateSchema(SimpleConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, schema)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	assert.Contains(t, string(schema), "host")
	assert.Contains(t, string(schema), "port")
}

func TestGrantsSchema(t *testing.T) {
	schema, err := GrantsSchema()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")
	assert.Len(t, properties, len(entities.Kinds()))
	for _, k := range entities.Kinds() {
		prop, ok := properties[k.String()].(map[string]interface{})
		require.True(t, ok, "missing property %s", k)
		assert.Equal(t, "array", prop["type"])
	}

	assert.Equal(t, false, decoded["additionalProperties"])
	_, hasRequired := decoded["required"]
	assert.False(t, hasRequired, "every kind is optional")
}
