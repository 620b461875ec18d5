// Source emission for the generated client library. Each emit function
// builds one file's source text and runs it through goimports-equivalent
// processing so the output compiles without a manual formatting step.

package generator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/oasforge/oasforge"
	"github.com/oasforge/oasforge/projector"
	"github.com/oasforge/oasforge/resolver"
)

// header is the marker prefix on every generated file.
const header = "// Code generated by oasforge. DO NOT EDIT.\n\n"

// formatSource formats Go source and fixes its import block. Generated
// code must be immediately compilable without the user running goimports.
func formatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, nil)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to format %s: %w", filename, err)
	}
	return out, nil
}

// emitClient builds the client context file: the Client struct that owns
// the base URL and HTTP transport, plus the request plumbing every
// generated service method calls into.
func (g *Generator) emitClient(pkg string, ir *projector.IR) ([]byte, error) {
	userAgent := g.UserAgent
	if userAgent == "" {
		title := ir.Name
		if title == "" {
			title = "API Client"
		}
		userAgent = fmt.Sprintf("oasforge/%s/generated/%s", oasforge.Version(), title)
	}

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString(`import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

`)
	if ir.Name != "" {
		fmt.Fprintf(&b, "// Client is the context for all %s calls. Construct one per\n", ir.Name)
	} else {
		b.WriteString("// Client is the context for all API calls. Construct one per\n")
	}
	b.WriteString(`// configuration; concurrent use of a single Client is safe because the
// Client is never mutated after construction.
type Client struct {
	// BaseURL is the root endpoint, without a trailing slash.
	BaseURL string
	// HTTPClient issues the requests.
	HTTPClient *http.Client
	// UserAgent is sent on every request.
	UserAgent string
}

`)
	fmt.Fprintf(&b, `// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  %q,
	}
}

`, userAgent)
	b.WriteString(`// RequestOptions carries the per-call inputs of a generated method.
type RequestOptions struct {
	// Query is appended to the request URL.
	Query url.Values
	// Header is merged into the request headers.
	Header http.Header
	// Body is JSON-encoded as the request body when non-nil.
	Body any
}

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// DecodeJSON decodes a response body into v and closes the body.
func DecodeJSON(res *http.Response, v any) error {
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(v)
}

// do issues a single request. Non-2xx responses are drained and returned
// as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, opts *RequestOptions) (*http.Response, error) {
	endpoint := c.BaseURL + path
	var body io.Reader
	if opts != nil && opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to build request: %w", err)
	}
	if opts != nil {
		if len(opts.Query) > 0 {
			req.URL.RawQuery = opts.Query.Encode()
		}
		for key, values := range opts.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.UserAgent)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		payload, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, &APIError{StatusCode: res.StatusCode, Body: payload}
	}
	return res, nil
}
`)
	return formatSource("client.go", []byte(b.String()))
}

// emitModels builds one Go type per component schema, in name order.
func (g *Generator) emitModels(pkg string, ir *projector.IR) ([]byte, int, error) {
	names := make([]string, 0, len(ir.Components.Schemas))
	for name := range ir.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	count := 0
	for _, name := range names {
		typeName := toTypeName(name)
		schema, ok := ir.Components.Schemas[name].(map[string]any)
		if !ok {
			// Already replaced by a descriptor or not an object; alias it
			fmt.Fprintf(&b, "// %s is an alias for the %s schema.\ntype %s = %s\n\n",
				typeName, name, typeName, goType(ir.Components.Schemas[name]))
			count++
			continue
		}
		g.emitModel(&b, name, typeName, schema)
		count++
	}

	src, err := formatSource("models.go", []byte(b.String()))
	if err != nil {
		return nil, 0, err
	}
	return src, count, nil
}

// emitModel writes a single schema as a struct or type alias.
func (g *Generator) emitModel(b *strings.Builder, name, typeName string, schema map[string]any) {
	if desc, _ := schema["description"].(string); desc != "" {
		fmt.Fprintf(b, "// %s: %s\n", typeName, firstLine(desc))
	} else {
		fmt.Fprintf(b, "// %s corresponds to the %s schema.\n", typeName, name)
	}

	properties, _ := schema["properties"].(map[string]any)
	schemaType, _ := schema["type"].(string)
	if schemaType != "object" && len(properties) == 0 {
		fmt.Fprintf(b, "type %s = %s\n\n", typeName, goType(schema))
		return
	}

	required := map[string]bool{}
	if list, ok := schema["required"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				required[s] = true
			}
		}
	}

	propNames := make([]string, 0, len(properties))
	for propName := range properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	fmt.Fprintf(b, "type %s struct {\n", typeName)
	for _, propName := range propNames {
		fieldType := goType(properties[propName])
		tag := propName
		// Optional primitives become pointers so absence is representable
		if !required[propName] {
			tag += ",omitempty"
			if isPrimitiveGoType(fieldType) {
				fieldType = "*" + fieldType
			}
		}
		fmt.Fprintf(b, "\t%s %s `json:%q`\n", toFieldName(propName), fieldType, tag)
	}
	b.WriteString("}\n\n")
}

// emitController builds the service file for one controller.
func (g *Generator) emitController(pkg, controller string, ops []projector.Operation) ([]byte, error) {
	serviceName := toTypeName(controller) + "Service"

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("import (\n\t\"context\"\n\t\"net/http\"\n)\n\n")

	fmt.Fprintf(&b, "// %s groups the %s operations.\ntype %s struct {\n\tclient *Client\n}\n\n",
		serviceName, controller, serviceName)
	fmt.Fprintf(&b, "// %s returns the service for %s operations.\nfunc (c *Client) %s() *%s {\n\treturn &%s{client: c}\n}\n\n",
		toTypeName(controller), controller, toTypeName(controller), serviceName, serviceName)

	for _, op := range ops {
		methodName := toMethodName(op.OperationID)
		if op.Summary != "" {
			fmt.Fprintf(&b, "// %s: %s\n", methodName, firstLine(op.Summary))
		} else {
			fmt.Fprintf(&b, "// %s calls %s %s.\n", methodName, strings.ToUpper(op.Method), op.Path)
		}
		fmt.Fprintf(&b, "// %s %s\n", strings.ToUpper(op.Method), op.Path)
		fmt.Fprintf(&b, "func (s *%s) %s(ctx context.Context, opts *RequestOptions) (*http.Response, error) {\n",
			serviceName, methodName)
		fmt.Fprintf(&b, "\treturn s.client.do(ctx, %s, %q, opts)\n}\n\n",
			httpMethodConstant(op.Method), op.Path)
	}

	return formatSource(serviceFileName(controller), []byte(b.String()))
}

// goType maps a resolved schema node to a Go type expression.
func goType(v any) string {
	switch val := v.(type) {
	case *resolver.SchemaDescriptor:
		if val.ModelName != "" {
			return toTypeName(val.ModelName)
		}
		return "any"
	case map[string]any:
		schemaType, _ := val["type"].(string)
		format, _ := val["format"].(string)
		switch schemaType {
		case "string":
			return "string"
		case "boolean":
			return "bool"
		case "integer":
			if format == "int32" {
				return "int32"
			}
			return "int64"
		case "number":
			if format == "float" {
				return "float32"
			}
			return "float64"
		case "array":
			return "[]" + goType(val["items"])
		case "object":
			return "map[string]any"
		}
		return "any"
	default:
		return "any"
	}
}

// isPrimitiveGoType reports whether a Go type expression is a value type
// that needs pointer indirection to represent absence.
func isPrimitiveGoType(t string) bool {
	switch t {
	case "string", "bool", "int32", "int64", "float32", "float64":
		return true
	}
	return false
}

// httpMethodConstant maps a lowercase HTTP method to its net/http constant,
// falling back to a quoted literal for anything unexpected.
func httpMethodConstant(method string) string {
	switch strings.ToLower(method) {
	case "get":
		return "http.MethodGet"
	case "put":
		return "http.MethodPut"
	case "post":
		return "http.MethodPost"
	case "delete":
		return "http.MethodDelete"
	case "options":
		return "http.MethodOptions"
	case "head":
		return "http.MethodHead"
	case "patch":
		return "http.MethodPatch"
	case "trace":
		return "http.MethodTrace"
	}
	return fmt.Sprintf("%q", strings.ToUpper(method))
}

// firstLine truncates a description to its first line for use in a doc
// comment.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
