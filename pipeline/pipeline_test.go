package pipeline

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/decoder"
	"github.com/oasforge/oasforge/forgeerrors"
	"github.com/oasforge/oasforge/loader"
	"github.com/oasforge/oasforge/resolver"
)

const testDocJSON = `{
  "openapi": "3.0.0",
  "info": {"title": "Test API", "version": "1.0.0"},
  "paths": {
    "/test": {
      "get": {
        "operationId": "getTest",
        "tags": ["TestController"],
        "parameters": [{"name": "id", "in": "query", "schema": {"type": "string"}}],
        "responses": {"200": {"description": "OK"}}
      },
      "post": {
        "operationId": "Controller_postTest",
        "tags": ["TestController"]
      }
    }
  },
  "components": {"schemas": {"Test": {"type": "object"}}}
}`

func TestParseLiteralDocument(t *testing.T) {
	res, err := New().Parse(testDocJSON)
	require.NoError(t, err)

	assert.Equal(t, loader.SourceKindLiteral, res.Kind)
	assert.Equal(t, decoder.FormatJSON, res.Format)
	assert.Equal(t, "Test API", res.IR.Name)
	assert.Equal(t, "1.0.0", res.IR.Version)

	// The marker-bearing post operation must not survive projection
	require.Equal(t, []string{"TestController"}, res.IR.ControllerNames)
	ops := res.IR.Controllers["TestController"]
	require.Len(t, ops, 1)
	assert.Equal(t, "getTest", ops[0].OperationID)
	assert.Equal(t, "get", ops[0].Method)
	assert.Equal(t, "/test", ops[0].Path)

	// The unresolved canonical form stays available alongside the IR
	require.NotNil(t, res.Document)
	assert.Contains(t, res.Document.Components.Schemas, "Test")
}

func TestParseYAMLOverHTTP(t *testing.T) {
	const doc = `
openapi: 3.0.0
info:
  title: Remote API
  version: 2.0.0
servers:
  - url: https://remote.example.com
paths:
  /things:
    get:
      operationId: listThings
      tags: [Things]
      parameters:
        - $ref: '#/components/parameters/PageSize'
      responses:
        '200':
          description: OK
components:
  parameters:
    PageSize:
      in: query
      name: pageSize
      required: false
      schema:
        type: integer
        format: int32
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	res, err := New().Parse(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, loader.SourceKindURL, res.Kind)
	assert.Equal(t, decoder.FormatYAML, res.Format)
	assert.Equal(t, "https://remote.example.com", res.IR.BaseURL)

	ops := res.IR.Controllers["Things"]
	require.Len(t, ops, 1)
	require.Len(t, ops[0].Parameters, 1)

	desc, ok := ops[0].Parameters[0].(*resolver.ParameterDescriptor)
	require.True(t, ok, "parameter reference should resolve to a descriptor")
	assert.Equal(t, "PageSize", desc.ModelName)
	assert.True(t, desc.IsReference)
	assert.Equal(t, "query", desc.Location)
	assert.Equal(t, "integer", desc.PrimitiveType)
}

func TestParseNumericResponseKeys(t *testing.T) {
	// Unquoted status codes, the dominant style in real-world YAML
	const doc = `
openapi: 3.0.0
info:
  title: Numeric API
  version: 1.0.0
paths:
  /things:
    get:
      operationId: listThings
      responses:
        200:
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Thing'
        404:
          description: missing
components:
  schemas:
    Thing:
      type: object
`
	res, err := New().Parse(doc)
	require.NoError(t, err)

	ops := res.IR.Controllers["Default"]
	require.Len(t, ops, 1)
	responses := ops[0].Responses
	require.NotNil(t, responses, "responses must survive projection")
	assert.Contains(t, responses, "404")

	okResponse, ok := responses["200"].(map[string]any)
	require.True(t, ok, "expected string-keyed response map, got %T", responses["200"])
	content, ok := okResponse["content"].(map[string]any)
	require.True(t, ok)
	media, ok := content["application/json"].(map[string]any)
	require.True(t, ok)

	desc, ok := media["schema"].(*resolver.SchemaDescriptor)
	require.True(t, ok, "nested reference should resolve to a descriptor")
	assert.Equal(t, "Thing", desc.ModelName)
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		_, err := New().Parse(input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, forgeerrors.ErrValidation), "input %q: got %v", input, err)
	}
}

func TestParseMalformedLiteral(t *testing.T) {
	// Looks inline enough to skip file lookup, but decodes as neither format
	_, err := New().Parse(`openapi: [unclosed`)
	require.Error(t, err)

	var parseErr *forgeerrors.ContentParsingError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, []string{"JSON", "YAML"}, parseErr.Formats)
}
