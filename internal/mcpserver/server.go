// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasforge pipeline and generator as MCP tools over
// stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasforge/oasforge"
)

const serverInstructions = `oasforge MCP server — parses OpenAPI 3.x and Swagger 2.0 documents and generates typed Go client libraries.

Tools:
- parse: load a document from a URL, file path, or inline text and return a structural summary (title, version, servers, controllers, schema count).
- generate: run the full pipeline and emit a Go client package, either written to a directory or returned inline.

Documents may be JSON or YAML; Swagger 2.0 input is normalized to the OpenAPI 3 shape before resolution.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasforge", Version: oasforge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an OpenAPI or Swagger document. Accepts a URL, a file path, or the document text itself. Returns a structural summary: title, version, base URL, controllers with operation counts, and schema count.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed Go client library from an OpenAPI or Swagger document. Writes files to output_dir when given, otherwise returns the generated sources inline.",
	}, handleGenerate)
}

// errResult wraps an error as a tool-call failure.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
