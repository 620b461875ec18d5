// Package decoder turns raw document text into an untyped document tree.
//
// JSON decoding is attempted first (cheaper), falling back to YAML. When
// both fail the error is a [forgeerrors.ContentParsingError] naming both
// attempted formats. There is no partial decoding: the result is either a
// complete tree or an error.
//
// Alongside the generic map tree, the decoder retains the source yaml.Node
// so that mapping key order survives decoding; Go maps do not preserve
// insertion order, and downstream projection guarantees document order.
package decoder

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/oasforge/oasforge/forgeerrors"
)

// Format identifies the decoded source format.
type Format string

const (
	// FormatJSON indicates the source decoded as JSON
	FormatJSON Format = "json"
	// FormatYAML indicates the source decoded as YAML
	FormatYAML Format = "yaml"
)

// RawDocument is an untyped document tree plus the source node tree that
// preserves mapping key order. The shape is unknown until the normalizer
// classifies it.
type RawDocument struct {
	// Data is the decoded document as a generic map
	Data map[string]any
	// Root is the source node tree; mapping order follows the document.
	// May be nil when order tracking failed (the tree itself is still valid).
	Root *yaml.Node
	// Format is the format the source decoded as
	Format Format
}

// Decode parses raw text as JSON first, then YAML.
func Decode(data []byte) (*RawDocument, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err == nil {
		return &RawDocument{
			Data:   tree,
			Root:   parseNode(data),
			Format: FormatJSON,
		}, nil
	}

	// YAML fallback. The YAML parser accepts JSON as well, so reaching an
	// error here means the text is neither format.
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &forgeerrors.ContentParsingError{
			Op:      "decode",
			Formats: []string{"JSON", "YAML"},
			Message: "input is not a structured document",
			Cause:   err,
		}
	}
	if tree == nil {
		return nil, &forgeerrors.ContentParsingError{
			Op:      "decode",
			Formats: []string{"JSON", "YAML"},
			Message: "document is empty or not an object",
		}
	}

	for key, value := range tree {
		tree[key] = stringifyKeys(value)
	}
	return &RawDocument{
		Data:   tree,
		Root:   parseNode(data),
		Format: FormatYAML,
	}, nil
}

// stringifyKeys rewrites map[any]any mappings into map[string]any,
// recursively. YAML produces non-string keys for unquoted tokens like the
// numeric status codes under responses; downstream stages only understand
// string-keyed maps, so keys are rendered to their string form here.
func stringifyKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = stringifyKeys(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringifyKeys(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = stringifyKeys(item)
		}
		return val
	default:
		return v
	}
}

// parseNode builds the order-preserving node tree. A node parse failure is
// not fatal: order falls back to map iteration downstream.
func parseNode(data []byte) *yaml.Node {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil
	}
	return &root
}

// MappingNode returns the document's top-level mapping node, or nil when
// order tracking is unavailable.
func (d *RawDocument) MappingNode() *yaml.Node {
	if d == nil || d.Root == nil {
		return nil
	}
	node := d.Root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// ChildNode returns the value node for key within a mapping node, or nil.
func ChildNode(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// MappingKeys returns the keys of a mapping node in document order.
func MappingKeys(mapping *yaml.Node) []string {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys
}
