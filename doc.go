// Package oasforge turns Swagger 2.0 and OpenAPI 3.x documents into typed
// client libraries.
//
// The heart of oasforge is a single-pass ingestion pipeline that takes a
// loosely-structured, version-ambiguous schema document and produces a stable
// intermediate representation (IR) that code emitters can consume without
// understanding OpenAPI's quirks:
//
//   - loader: obtains raw document text from a URL, file path, or literal string
//   - decoder: parses raw text as JSON, falling back to YAML
//   - normalizer: maps Swagger 2.0 and OpenAPI 3.x onto one canonical shape
//   - resolver: replaces every internal $ref with a typed descriptor
//   - projector: groups operations by tag into controllers and builds the IR
//   - generator: consumes the IR and emits a typed Go client
//
// # Quick Start
//
// Parse a document into the IR:
//
//	import "github.com/oasforge/oasforge/pipeline"
//
//	p := pipeline.New()
//	res, err := p.Parse("https://api.example.com/openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("API: %s %s\n", res.IR.Name, res.IR.Version)
//
// Generate a client from the IR:
//
//	import "github.com/oasforge/oasforge/generator"
//
//	g := &generator.Generator{PackageName: "petstore"}
//	out, err := g.Generate(res.IR)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := out.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// All pipeline stages fail fast and propagate structured errors from the
// forgeerrors package. Callers distinguish bad input (ValidationError),
// undecodable content (ContentParsingError), and transport failures
// (NetworkError) with errors.Is and errors.As.
//
// # Supported Versions
//
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.x: https://spec.openapis.org/oas/v3.0.0.html
package oasforge
