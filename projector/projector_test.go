package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasforge/oasforge/normalizer"
)

func op(method, id string, extra map[string]any) normalizer.Operation {
	raw := map[string]any{"operationId": id}
	for k, v := range extra {
		raw[k] = v
	}
	return normalizer.Operation{Method: method, Raw: raw}
}

func TestProjectGroupsByFirstTag(t *testing.T) {
	doc := &normalizer.Document{
		Info:    normalizer.Info{Title: "Widget API", Version: "1.2.0", Description: "widgets"},
		Servers: []string{"https://api.example.com/v1"},
		Paths: []normalizer.PathItem{
			{
				Path: "/widgets",
				Operations: []normalizer.Operation{
					op("get", "listWidgets", map[string]any{
						"tags":    []any{"Widgets", "Search"},
						"summary": "List widgets",
					}),
					op("post", "createWidget", map[string]any{
						"tags": []any{"Widgets"},
					}),
				},
			},
			{
				Path: "/status",
				Operations: []normalizer.Operation{
					op("get", "getStatus", nil),
				},
			},
		},
	}

	ir := New().Project(doc)

	assert.Equal(t, "Widget API", ir.Name)
	assert.Equal(t, "widgets", ir.Description)
	assert.Equal(t, "1.2.0", ir.Version)
	assert.Equal(t, "https://api.example.com/v1", ir.BaseURL)

	require.Equal(t, []string{"Widgets", "Default"}, ir.ControllerNames)

	widgets := ir.Controllers["Widgets"]
	require.Len(t, widgets, 2)
	assert.Equal(t, "listWidgets", widgets[0].OperationID)
	assert.Equal(t, "List widgets", widgets[0].Summary)
	assert.Equal(t, "/widgets", widgets[0].Path)
	assert.Equal(t, "get", widgets[0].Method)
	assert.Equal(t, "createWidget", widgets[1].OperationID)

	// Untagged operations land in the Default controller
	fallback := ir.Controllers["Default"]
	require.Len(t, fallback, 1)
	assert.Equal(t, "getStatus", fallback[0].OperationID)
}

func TestProjectSkipsInternalOperations(t *testing.T) {
	doc := &normalizer.Document{
		Paths: []normalizer.PathItem{
			{
				Path: "/internal/health",
				Operations: []normalizer.Operation{
					op("get", "Health_Controller_check", map[string]any{"tags": []any{"Ops"}}),
				},
			},
			{
				Path: "/widgets",
				Operations: []normalizer.Operation{
					op("get", "listWidgets", map[string]any{"tags": []any{"Ops"}}),
					{Method: "delete", Raw: map[string]any{"tags": []any{"Ops"}}},
				},
			},
		},
	}

	ir := New().Project(doc)

	// The marker-bearing and id-less operations are both dropped
	require.Len(t, ir.Controllers["Ops"], 1)
	assert.Equal(t, "listWidgets", ir.Controllers["Ops"][0].OperationID)
}

func TestProjectDeclaredTagsWithoutOperations(t *testing.T) {
	doc := &normalizer.Document{
		Tags: []any{
			map[string]any{"name": "Billing", "description": "billing ops"},
			map[string]any{"name": "Widgets"},
		},
		Paths: []normalizer.PathItem{
			{
				Path: "/widgets",
				Operations: []normalizer.Operation{
					op("get", "listWidgets", map[string]any{"tags": []any{"Widgets"}}),
				},
			},
		},
	}

	ir := New().Project(doc)

	require.Equal(t, []string{"Billing", "Widgets"}, ir.ControllerNames)
	assert.Empty(t, ir.Controllers["Billing"])
	assert.Len(t, ir.Controllers["Widgets"], 1)
}

func TestProjectEmptyDocument(t *testing.T) {
	ir := New().Project(&normalizer.Document{})

	assert.Empty(t, ir.ControllerNames)
	assert.Empty(t, ir.Controllers)
	assert.Empty(t, ir.BaseURL)
}
