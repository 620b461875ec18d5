// Package normalizer maps Swagger 2.0 and OpenAPI 3.x documents onto one
// canonical document shape.
//
// Exactly one of the two legacy shapes is consumed: Swagger 2.0
// host/basePath/schemes become OpenAPI servers, and the four Swagger
// definition maps become components sub-maps. The output always carries the
// OpenAPI 3.x field names, so no downstream component ever inspects the
// source version again.
package normalizer

import (
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasforge/oasforge/decoder"
	"github.com/oasforge/oasforge/forgeerrors"
)

// markerFields are the root fields at least one of which must be present
// for the input to plausibly be a Swagger/OpenAPI document.
var markerFields = []string{"swagger", "openapi", "info", "paths"}

// legacyRefPrefixes maps Swagger 2.0 pointer prefixes to their OpenAPI 3.x
// components equivalents. Rewriting them up front keeps reference
// classification and dereferencing uniform downstream.
var legacyRefPrefixes = map[string]string{
	"#/definitions/": "#/components/schemas/",
	"#/parameters/":  "#/components/parameters/",
	"#/responses/":   "#/components/responses/",
}

// Normalize verifies the raw tree plausibly is a Swagger/OpenAPI document
// and maps it onto the canonical Document shape.
func Normalize(raw *decoder.RawDocument) (*Document, error) {
	if raw == nil || raw.Data == nil {
		return nil, &forgeerrors.ValidationError{
			Op:      "normalize",
			Message: "document tree is empty",
		}
	}
	if !hasMarkerField(raw.Data) {
		return nil, &forgeerrors.ValidationError{
			Op: "normalize",
			Message: fmt.Sprintf("document does not look like a Swagger/OpenAPI document (none of %s present)",
				strings.Join(markerFields, ", ")),
		}
	}

	doc := &Document{
		Info: extractInfo(raw.Data),
		Tags: []any{},
	}
	if tags := anySlice(raw.Data["tags"]); tags != nil {
		doc.Tags = tags
	}

	// Branch on presence of the swagger field: anything carrying it is
	// treated as the legacy 2.0 shape.
	if _, isLegacy := raw.Data["swagger"]; isLegacy {
		normalizeSwagger(raw.Data, doc)
	} else {
		normalizeOpenAPI(raw.Data, doc)
	}

	doc.Paths = extractPaths(raw)
	return doc, nil
}

// normalizeSwagger consumes the Swagger 2.0 shape.
func normalizeSwagger(data map[string]any, doc *Document) {
	// swagger: "2.0" is rewritten as openapi: "3.0.0"; any other value
	// passes through unchanged, with no coercion.
	version := stringValue(data["swagger"])
	if version == "2.0" {
		version = "3.0.0"
	}
	doc.OpenAPIVersion = version

	// servers synthesized from schemes[0] ?? "https", host, and basePath;
	// no host means no servers.
	if host := stringValue(data["host"]); host != "" {
		scheme := "https"
		if schemes := anySlice(data["schemes"]); len(schemes) > 0 {
			if s := stringValue(schemes[0]); s != "" {
				scheme = s
			}
		}
		doc.Servers = []string{scheme + "://" + host + stringValue(data["basePath"])}
	} else {
		doc.Servers = []string{}
	}

	doc.Components = Components{
		Schemas:         rewriteMap(mapValue(data["definitions"])),
		Parameters:      rewriteMap(mapValue(data["parameters"])),
		Responses:       rewriteMap(mapValue(data["responses"])),
		SecuritySchemes: rewriteMap(mapValue(data["securityDefinitions"])),
	}
}

// normalizeOpenAPI consumes the OpenAPI 3.x shape, filling empty defaults
// for missing servers and components.
func normalizeOpenAPI(data map[string]any, doc *Document) {
	doc.OpenAPIVersion = stringValue(data["openapi"])

	doc.Servers = []string{}
	for _, server := range anySlice(data["servers"]) {
		if url := stringValue(mapValue(server)["url"]); url != "" {
			doc.Servers = append(doc.Servers, url)
		}
	}

	components := mapValue(data["components"])
	doc.Components = Components{
		Schemas:         mapValueOrEmpty(components["schemas"]),
		Parameters:      mapValueOrEmpty(components["parameters"]),
		Responses:       mapValueOrEmpty(components["responses"]),
		SecuritySchemes: mapValueOrEmpty(components["securitySchemes"]),
	}
}

// extractInfo lifts the info block fields the IR carries.
func extractInfo(data map[string]any) Info {
	info := mapValue(data["info"])
	return Info{
		Title:       stringValue(info["title"]),
		Version:     stringValue(info["version"]),
		Description: stringValue(info["description"]),
	}
}

// extractPaths builds the ordered path list. Ordering comes from the source
// node tree; when that is unavailable both paths and methods fall back to
// lexicographic order, keeping output deterministic.
func extractPaths(raw *decoder.RawDocument) []PathItem {
	pathsData := mapValue(raw.Data["paths"])
	if len(pathsData) == 0 {
		return []PathItem{}
	}

	var pathsNode *yaml.Node
	if root := raw.MappingNode(); root != nil {
		pathsNode = decoder.ChildNode(root, "paths")
	}

	pathKeys := orderedKeys(pathsData, pathsNode)
	isLegacy := false
	if _, ok := raw.Data["swagger"]; ok {
		isLegacy = true
	}

	items := make([]PathItem, 0, len(pathKeys))
	for _, path := range pathKeys {
		pathItem := mapValue(pathsData[path])
		if pathItem == nil {
			continue
		}

		item := PathItem{Path: path}
		for _, method := range orderedKeys(pathItem, decoder.ChildNode(pathsNode, path)) {
			if !isHTTPMethod(method) {
				continue
			}
			op := mapValue(pathItem[method])
			if op == nil {
				// Absent operation: skipped, not an error
				continue
			}
			if isLegacy {
				op = rewriteMap(op)
			}
			item.Operations = append(item.Operations, Operation{Method: method, Raw: op})
		}
		items = append(items, item)
	}
	return items
}

// orderedKeys returns the keys of data in source-document order when a
// mapping node is available, and in sorted order otherwise. Keys present in
// the node but absent from the data map are skipped.
func orderedKeys(data map[string]any, node *yaml.Node) []string {
	nodeKeys := decoder.MappingKeys(node)
	if len(nodeKeys) == 0 {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	keys := make([]string, 0, len(data))
	for _, k := range nodeKeys {
		if _, ok := data[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// hasMarkerField reports whether any root marker field is present.
func hasMarkerField(data map[string]any) bool {
	for _, field := range markerFields {
		if _, ok := data[field]; ok {
			return true
		}
	}
	return false
}

// rewriteMap returns a copy of m with every legacy $ref prefix rewritten to
// its components equivalent. The input is never mutated.
func rewriteMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = rewriteValue(k, v)
	}
	return out
}

// rewriteValue walks an arbitrary value rewriting legacy $ref strings.
func rewriteValue(key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = rewriteValue(k, item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = rewriteValue("", item)
		}
		return out
	case string:
		if key == "$ref" {
			return rewriteRefPrefix(val)
		}
		return val
	default:
		return val
	}
}

// rewriteRefPrefix maps a Swagger 2.0 pointer onto the components layout.
func rewriteRefPrefix(ref string) string {
	for legacy, components := range legacyRefPrefixes {
		if strings.HasPrefix(ref, legacy) {
			return components + strings.TrimPrefix(ref, legacy)
		}
	}
	return ref
}

// stringValue returns v as a string, or "" when it is not one.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// mapValue returns v as a generic map, or nil when it is not one.
func mapValue(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// mapValueOrEmpty is mapValue with an empty-map default.
func mapValueOrEmpty(v any) map[string]any {
	if m := mapValue(v); m != nil {
		return m
	}
	return map[string]any{}
}

// anySlice returns v as a generic slice, or nil when it is not one.
func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}
