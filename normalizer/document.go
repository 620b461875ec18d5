package normalizer

// Document is the canonical document shape shared by Swagger 2.0 and
// OpenAPI 3.x sources. It always carries the OpenAPI 3.x field names;
// downstream components never branch on source version again.
type Document struct {
	// OpenAPIVersion is the canonical version string. A Swagger 2.0 source
	// is rewritten to "3.0.0"; any other swagger value passes through.
	OpenAPIVersion string
	// Info is the document's metadata block
	Info Info
	// Servers is the ordered list of base URLs; the first is the default
	Servers []string
	// Paths is the ordered list of path entries, in document order
	Paths []PathItem
	// Components holds the reusable named definitions
	Components Components
	// Tags is the document-level tag list, passed through untouched
	Tags []any
}

// Info carries the document metadata consumed by the IR.
type Info struct {
	Title       string
	Version     string
	Description string
}

// PathItem is one path template with its operations in document order.
type PathItem struct {
	// Path is the path template string (e.g., "/pets/{petId}")
	Path string
	// Operations lists the HTTP operations on this path, in document order
	Operations []Operation
}

// Operation is one HTTP method on one path. Raw holds the untyped operation
// object (operationId, tags, summary, parameters, requestBody, responses);
// the resolver rewrites reference nodes inside it and the projector lifts
// the fields it needs.
type Operation struct {
	// Method is the lower-case HTTP method name
	Method string
	// Raw is the untyped operation object
	Raw map[string]any
}

// Components holds the reusable named definitions, keyed by name. For a
// Swagger 2.0 source these are populated from definitions, parameters,
// responses, and securityDefinitions respectively.
type Components struct {
	Schemas         map[string]any
	Parameters      map[string]any
	Responses       map[string]any
	SecuritySchemes map[string]any
}

// BaseURL returns the default server URL, or an empty string when the
// document declares no servers.
func (d *Document) BaseURL() string {
	if len(d.Servers) == 0 {
		return ""
	}
	return d.Servers[0]
}

// Schema looks up a named schema in the components.
func (c Components) Schema(name string) (any, bool) {
	s, ok := c.Schemas[name]
	return s, ok
}

// httpMethods is the set of HTTP method field names recognized inside a
// path item.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// isHTTPMethod reports whether a path item field name is an HTTP method.
func isHTTPMethod(name string) bool {
	for _, m := range httpMethods {
		if name == m {
			return true
		}
	}
	return false
}
