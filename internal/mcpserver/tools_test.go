package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `
openapi: 3.0.0
info:
  title: Tool API
  version: 1.0.0
paths:
  /items:
    get:
      operationId: listItems
      tags: [Items]
      responses:
        '200':
          description: OK
components:
  schemas:
    Item:
      type: object
      properties:
        id:
          type: string
`

func TestHandleParse(t *testing.T) {
	result, output, err := handleParse(context.Background(), nil, parseInput{Locator: testDoc})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "Tool API", output.Title)
	assert.Equal(t, "3.0.0", output.OASVersion)
	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, 1, output.PathCount)
	assert.Equal(t, 1, output.SchemaCount)
	require.Len(t, output.Controllers, 1)
	assert.Equal(t, "Items", output.Controllers[0].Name)
	assert.Equal(t, 1, output.Controllers[0].Operations)
}

func TestHandleParseError(t *testing.T) {
	result, _, err := handleParse(context.Background(), nil, parseInput{Locator: "   "})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestHandleGenerateInline(t *testing.T) {
	result, output, err := handleGenerate(context.Background(), nil, generateInput{
		Locator: testDoc,
		Package: "toolapi",
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "toolapi", output.PackageName)
	assert.Equal(t, 1, output.GeneratedModels)
	assert.Equal(t, 1, output.GeneratedOperations)
	assert.Empty(t, output.OutputDir)

	names := make([]string, 0, len(output.Files))
	for _, f := range output.Files {
		names = append(names, f.Name)
		assert.NotEmpty(t, f.Content)
		assert.Equal(t, len(f.Content), f.Size)
	}
	assert.Equal(t, []string{"client.go", "models.go", "items_service.go"}, names)
}

func TestHandleGenerateToDirectory(t *testing.T) {
	dir := t.TempDir()
	result, output, err := handleGenerate(context.Background(), nil, generateInput{
		Locator:   testDoc,
		OutputDir: dir,
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, dir, output.OutputDir)
	for _, f := range output.Files {
		assert.Empty(t, f.Content)
		assert.Positive(t, f.Size)
	}
}
