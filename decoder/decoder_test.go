package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/forgeerrors"
)

func TestDecodeJSON(t *testing.T) {
	raw, err := Decode([]byte(`{"openapi": "3.0.0", "info": {"title": "Test API"}, "paths": {}}`))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, raw.Format)
	assert.Equal(t, "3.0.0", raw.Data["openapi"])

	info, ok := raw.Data["info"].(map[string]any)
	require.True(t, ok, "info should decode as a map")
	assert.Equal(t, "Test API", info["title"])
}

func TestDecodeYAML(t *testing.T) {
	doc := `
swagger: "2.0"
info:
  title: Test API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
`
	raw, err := Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, raw.Format)
	assert.Equal(t, "2.0", raw.Data["swagger"])
	require.NotNil(t, raw.Data["paths"])
}

func TestDecodeYAMLNumericKeys(t *testing.T) {
	// Unquoted status codes are YAML integers; every nested mapping must
	// still come out string-keyed
	doc := `
openapi: 3.0.0
paths:
  /pets:
    get:
      responses:
        200:
          description: OK
        404:
          description: missing
`
	raw, err := Decode([]byte(doc))
	require.NoError(t, err)

	paths, ok := raw.Data["paths"].(map[string]any)
	require.True(t, ok, "paths should decode as a string-keyed map")
	pets, ok := paths["/pets"].(map[string]any)
	require.True(t, ok)
	get, ok := pets["get"].(map[string]any)
	require.True(t, ok)

	responses, ok := get["responses"].(map[string]any)
	require.True(t, ok, "responses should decode as a string-keyed map, got %T", get["responses"])
	assert.Contains(t, responses, "200")
	assert.Contains(t, responses, "404")

	okResponse, ok := responses["200"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "OK", okResponse["description"])
}

func TestDecodeMalformed(t *testing.T) {
	// Neither valid JSON nor valid YAML
	_, err := Decode([]byte(`{not json or yaml`))
	require.Error(t, err)

	var parseErr *forgeerrors.ContentParsingError
	require.True(t, errors.As(err, &parseErr), "expected ContentParsingError, got %T", err)
	assert.Equal(t, []string{"JSON", "YAML"}, parseErr.Formats)
	assert.True(t, errors.Is(err, forgeerrors.ErrContentParsing))
}

func TestDecodeNonObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"scalar", `42`},
		{"empty", ``},
		{"whitespace", "   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, forgeerrors.ErrContentParsing))
		})
	}
}

func TestMappingOrderPreserved(t *testing.T) {
	doc := `
openapi: "3.0.0"
paths:
  /zebras: {}
  /apples: {}
  /middle: {}
`
	raw, err := Decode([]byte(doc))
	require.NoError(t, err)

	root := raw.MappingNode()
	require.NotNil(t, root, "expected a mapping node for order tracking")

	paths := ChildNode(root, "paths")
	require.NotNil(t, paths)

	// Document order, not lexicographic order
	assert.Equal(t, []string{"/zebras", "/apples", "/middle"}, MappingKeys(paths))
}

func TestMappingOrderPreservedJSON(t *testing.T) {
	raw, err := Decode([]byte(`{"openapi": "3.0.0", "paths": {"/b": {}, "/a": {}}}`))
	require.NoError(t, err)

	root := raw.MappingNode()
	require.NotNil(t, root, "JSON decodes through the node parser too")

	assert.Equal(t, []string{"/b", "/a"}, MappingKeys(ChildNode(root, "paths")))
}

func TestChildNodeMissingKey(t *testing.T) {
	raw, err := Decode([]byte(`{"openapi": "3.0.0"}`))
	require.NoError(t, err)

	assert.Nil(t, ChildNode(raw.MappingNode(), "paths"))
	assert.Nil(t, ChildNode(nil, "paths"))
}
