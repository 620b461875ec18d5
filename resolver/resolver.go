// Package resolver replaces every internal $ref node in a canonical
// document with a typed descriptor.
//
// Resolution is a pure transform: the caller's document is never mutated,
// and the output is a freshly built tree. This keeps the unresolved
// canonical form available for metadata lookups without defensive copying.
//
// The walk visits a closed set of node variants — reference, inline
// parameter, mapping, sequence, scalar — so the classification rules
// (parameter vs schema vs other, and the only-primitive-parameters rule)
// live in one place instead of being re-sniffed field by field.
//
// The resolver performs exactly one pass. A reference whose target is
// itself a reference is resolved only one level deep, and a pointer whose
// target cannot be classified survives only as a named handle. Recursion is
// bounded: exceeding the depth budget fails the whole resolution with a
// RecursionLimitError rather than overflowing the stack.
package resolver

import (
	"strconv"

	"github.com/oasforge/oasforge/forgeerrors"
	"github.com/oasforge/oasforge/normalizer"
)

// MaxDepth is the default maximum recursion depth for document traversal.
const MaxDepth = 100

// Resolver resolves $ref pointers in a canonical document.
type Resolver struct {
	// MaxDepth is the maximum traversal depth. Zero means use the default.
	MaxDepth int
}

// New creates a new Resolver instance with default settings
func New() *Resolver {
	return &Resolver{}
}

// Resolve returns a structurally identical document in which every $ref
// node has been replaced by a descriptor or, when unresolvable, a verbatim
// copy. The input document is not modified.
func (r *Resolver) Resolve(doc *normalizer.Document) (*normalizer.Document, error) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	rc := &run{source: doc, maxDepth: maxDepth}

	out := &normalizer.Document{
		OpenAPIVersion: doc.OpenAPIVersion,
		Info:           doc.Info,
		Servers:        append([]string{}, doc.Servers...),
	}

	tags, err := rc.resolveValue(any(append([]any{}, doc.Tags...)), 0)
	if err != nil {
		return nil, err
	}
	out.Tags, _ = tags.([]any)

	out.Components = normalizer.Components{}
	if out.Components.Schemas, err = rc.resolveMap(doc.Components.Schemas); err != nil {
		return nil, err
	}
	if out.Components.Parameters, err = rc.resolveMap(doc.Components.Parameters); err != nil {
		return nil, err
	}
	if out.Components.Responses, err = rc.resolveMap(doc.Components.Responses); err != nil {
		return nil, err
	}
	if out.Components.SecuritySchemes, err = rc.resolveMap(doc.Components.SecuritySchemes); err != nil {
		return nil, err
	}

	out.Paths = make([]normalizer.PathItem, 0, len(doc.Paths))
	for _, item := range doc.Paths {
		resolved := normalizer.PathItem{Path: item.Path}
		for _, op := range item.Operations {
			raw, err := rc.resolveMap(op.Raw)
			if err != nil {
				return nil, err
			}
			resolved.Operations = append(resolved.Operations, normalizer.Operation{
				Method: op.Method,
				Raw:    raw,
			})
		}
		out.Paths = append(out.Paths, resolved)
	}

	return out, nil
}

// run carries per-resolution state: the source document for pointer
// dereferencing and the depth budget.
type run struct {
	source   *normalizer.Document
	maxDepth int
}

// node is the closed set of variants the resolver distinguishes.
type node interface {
	resolve(rc *run, depth int) (any, error)
}

// classify buckets an untyped value into one of the node variants.
func classify(v any) node {
	switch val := v.(type) {
	case map[string]any:
		if ref, ok := val["$ref"].(string); ok {
			return referenceNode{pointer: ParsePointer(ref), raw: val}
		}
		if hasKeys(val, "in", "name", "schema") {
			return parameterNode(val)
		}
		return mappingNode(val)
	case []any:
		return sequenceNode(val)
	default:
		return scalarNode{value: val}
	}
}

// resolveValue classifies and resolves a single value.
func (rc *run) resolveValue(v any, depth int) (any, error) {
	if depth > rc.maxDepth {
		return nil, &forgeerrors.RecursionLimitError{
			Limit:   rc.maxDepth,
			Message: "document structure too deeply nested",
		}
	}
	return classify(v).resolve(rc, depth)
}

// resolveMap resolves every value of a mapping, preserving keys.
func (rc *run) resolveMap(m map[string]any) (map[string]any, error) {
	out, err := mappingNode(m).resolve(rc, 0)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// referenceNode is an object carrying a $ref string. Sibling fields do not
// survive resolution; the pointer wins.
type referenceNode struct {
	pointer Pointer
	raw     map[string]any
}

func (n referenceNode) resolve(rc *run, depth int) (any, error) {
	if depth > rc.maxDepth {
		return nil, &forgeerrors.RecursionLimitError{
			Limit:   rc.maxDepth,
			Pointer: n.pointer.String(),
		}
	}

	switch n.pointer.Kind() {
	case RefKindParameter:
		target, ok := rc.deref(n.pointer)
		if !ok {
			// Dangling pointer: keep the $ref node verbatim
			return deepCopyValue(n.raw), nil
		}
		targetMap, ok := target.(map[string]any)
		if !ok {
			return deepCopyValue(target), nil
		}
		if desc, ok := parameterDescriptor(targetMap, n.pointer.FinalSegment(), true); ok {
			return desc, nil
		}
		// Non-primitive parameter schema: dereferenced node passes
		// through unresolved
		return deepCopyValue(targetMap), nil

	case RefKindSchema:
		desc := &SchemaDescriptor{
			ModelName:   n.pointer.FinalSegment(),
			RefType:     RefKindSchema,
			IsReference: true,
		}
		// A named handle only; but arrays surface their element's model
		// name so emitters can type the collection.
		if target, ok := rc.deref(n.pointer); ok {
			desc.Items = arrayItemsDescriptor(target)
		}
		return desc, nil

	default:
		// Only the name and reference-ness survive
		return &SchemaDescriptor{
			ModelName:   n.pointer.FinalSegment(),
			RefType:     RefKindOther,
			IsReference: true,
		}, nil
	}
}

// parameterNode is an inline parameter object: in, name, and schema fields
// with no $ref.
type parameterNode map[string]any

func (n parameterNode) resolve(rc *run, depth int) (any, error) {
	if desc, ok := parameterDescriptor(n, "", false); ok {
		return desc, nil
	}
	// Non-primitive schema: resolved like any other mapping
	return mappingNode(n).resolve(rc, depth)
}

// mappingNode is a plain object; every field resolves recursively in place.
type mappingNode map[string]any

func (n mappingNode) resolve(rc *run, depth int) (any, error) {
	out := make(map[string]any, len(n))
	for k, v := range n {
		resolved, err := rc.resolveValue(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	return out, nil
}

// sequenceNode is an array; resolution maps over elements preserving order.
type sequenceNode []any

func (n sequenceNode) resolve(rc *run, depth int) (any, error) {
	out := make([]any, len(n))
	for i, v := range n {
		resolved, err := rc.resolveValue(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

// scalarNode is anything else: strings, numbers, booleans, nil, and
// descriptors from a previous resolution pass. Scalars resolve to
// themselves, which is what makes resolution idempotent.
type scalarNode struct {
	value any
}

func (n scalarNode) resolve(_ *run, _ int) (any, error) {
	return n.value, nil
}

// parameterDescriptor builds a ParameterDescriptor from a parameter object
// when the object has in, name, and schema fields and the schema's type is
// a primitive. Returns false otherwise — the caller passes the node through
// unresolved.
func parameterDescriptor(m map[string]any, modelName string, isRef bool) (*ParameterDescriptor, bool) {
	if !hasKeys(m, "in", "name", "schema") {
		return nil, false
	}
	schema, ok := m["schema"].(map[string]any)
	if !ok {
		return nil, false
	}
	primitiveType, _ := schema["type"].(string)
	if primitiveType != "string" && primitiveType != "integer" {
		return nil, false
	}

	location, _ := m["in"].(string)
	required, _ := m["required"].(bool)
	format, _ := schema["format"].(string)

	return &ParameterDescriptor{
		ModelName:     modelName,
		IsReference:   isRef,
		Location:      location,
		Required:      required,
		PrimitiveType: primitiveType,
		Format:        format,
	}, true
}

// arrayItemsDescriptor returns an element descriptor when the target schema
// is an array whose items are themselves a schema reference.
func arrayItemsDescriptor(target any) *SchemaDescriptor {
	m, ok := target.(map[string]any)
	if !ok {
		return nil
	}
	if t, _ := m["type"].(string); t != "array" {
		return nil
	}
	items, ok := m["items"].(map[string]any)
	if !ok {
		return nil
	}
	ref, ok := items["$ref"].(string)
	if !ok {
		return nil
	}
	return &SchemaDescriptor{
		ModelName:   ParsePointer(ref).FinalSegment(),
		RefType:     RefKindSchema,
		IsReference: true,
	}
}

// deref walks the source document by successive field lookups to find the
// node a pointer targets. Only components-rooted pointers can be reached;
// anything else reports not found.
func (rc *run) deref(p Pointer) (any, bool) {
	segments := p.Segments()
	if len(segments) < 3 || segments[0] != "components" {
		return nil, false
	}

	var section map[string]any
	switch segments[1] {
	case "schemas":
		section = rc.source.Components.Schemas
	case "parameters":
		section = rc.source.Components.Parameters
	case "responses":
		section = rc.source.Components.Responses
	case "securitySchemes":
		section = rc.source.Components.SecuritySchemes
	default:
		return nil, false
	}

	current, ok := section[segments[2]]
	if !ok {
		return nil, false
	}

	// Walk any remaining segments through maps and sequences
	for _, seg := range segments[3:] {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			index, err := strconv.Atoi(seg)
			if err != nil || index < 0 || index >= len(v) {
				return nil, false
			}
			current = v[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// hasKeys reports whether m has every listed key.
func hasKeys(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// deepCopyValue deep-copies an untyped tree so pass-through nodes never
// alias the source document.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return val
	}
}
