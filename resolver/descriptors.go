package resolver

import "strings"

// RefKind classifies a $ref pointer by its path segments.
type RefKind string

const (
	// RefKindSchema is a pointer whose path contains the "schemas" segment
	RefKindSchema RefKind = "schema"
	// RefKindParameter is a pointer whose path contains the "parameters" segment
	RefKindParameter RefKind = "parameter"
	// RefKindOther is any pointer that is neither schema nor parameter
	RefKindOther RefKind = "other"
)

// ParameterDescriptor is a fully-resolved parameter. Only parameters whose
// underlying schema is a primitive (string/integer) resolve into this shape;
// others pass through unresolved.
type ParameterDescriptor struct {
	// ModelName is the reference's final path segment, or "" for an
	// inline parameter
	ModelName string
	// IsReference is true when the parameter came from a $ref
	IsReference bool
	// Location is the parameter location: header, query, or path
	Location string
	// Required reflects the parameter's required flag
	Required bool
	// PrimitiveType is the schema's primitive type (string, integer, ...)
	PrimitiveType string
	// Format is the schema's optional format qualifier (e.g., date, int32)
	Format string
}

// SchemaDescriptor is a resolved schema (or unclassifiable) reference. It is
// a named handle, not an inlined copy: model emission later looks the schema
// up by name in components.schemas.
type SchemaDescriptor struct {
	// ModelName is the reference's final path segment
	ModelName string
	// RefType is "schema" for schema pointers, "other" otherwise
	RefType RefKind
	// IsReference is always true for descriptors produced from a $ref
	IsReference bool
	// Items carries the element descriptor when the referenced schema is
	// an array of references; nil otherwise
	Items *SchemaDescriptor
}

// Pointer is a parsed $ref value: a slash-delimited path into the document.
type Pointer struct {
	raw      string
	segments []string
}

// ParsePointer splits a $ref string on "/" and drops the leading "#".
func ParsePointer(ref string) Pointer {
	parts := strings.Split(ref, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "#" {
			continue
		}
		segments = append(segments, unescapeJSONPointer(p))
	}
	return Pointer{raw: ref, segments: segments}
}

// String returns the original $ref value.
func (p Pointer) String() string { return p.raw }

// Segments returns the pointer's path segments.
func (p Pointer) Segments() []string { return p.segments }

// FinalSegment returns the pointer's last path segment, which doubles as
// the referenced component's name.
func (p Pointer) FinalSegment() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Kind classifies the pointer by inspecting its path segments.
func (p Pointer) Kind() RefKind {
	for _, seg := range p.segments {
		switch seg {
		case "parameters":
			return RefKindParameter
		case "schemas":
			return RefKindSchema
		}
	}
	return RefKindOther
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
