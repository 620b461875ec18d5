package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/pipeline"
)

type parseInput struct {
	Locator  string `json:"locator"              jsonschema:"URL, file path, or inline document text"`
	MaxDepth int    `json:"max_depth,omitempty"  jsonschema:"Maximum document nesting depth (0 = default)"`
}

type controllerSummary struct {
	Name       string `json:"name"`
	Operations int    `json:"operations"`
}

type parseOutput struct {
	Title       string              `json:"title"`
	Version     string              `json:"version"`
	OASVersion  string              `json:"oas_version"`
	Format      string              `json:"format"`
	BaseURL     string              `json:"base_url,omitempty"`
	PathCount   int                 `json:"path_count"`
	SchemaCount int                 `json:"schema_count"`
	Controllers []controllerSummary `json:"controllers,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	p := pipeline.New()
	p.MaxDepth = input.MaxDepth

	res, err := p.Parse(input.Locator)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Title:       res.IR.Name,
		Version:     res.IR.Version,
		OASVersion:  res.Document.OpenAPIVersion,
		Format:      string(res.Format),
		BaseURL:     res.IR.BaseURL,
		PathCount:   len(res.Document.Paths),
		SchemaCount: len(res.Document.Components.Schemas),
	}
	for _, name := range res.IR.ControllerNames {
		output.Controllers = append(output.Controllers, controllerSummary{
			Name:       name,
			Operations: len(res.IR.Controllers[name]),
		})
	}
	return nil, output, nil
}

type generateInput struct {
	Locator   string `json:"locator"               jsonschema:"URL, file path, or inline document text"`
	Package   string `json:"package,omitempty"     jsonschema:"Go package name for generated code (default: api)"`
	OutputDir string `json:"output_dir,omitempty"  jsonschema:"Directory to write files into; omit to return sources inline"`
}

type generatedFile struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Size    int    `json:"size"`
}

type generateOutput struct {
	PackageName         string          `json:"package_name"`
	Files               []generatedFile `json:"files"`
	GeneratedModels     int             `json:"generated_models"`
	GeneratedOperations int             `json:"generated_operations"`
	SkippedControllers  []string        `json:"skipped_controllers,omitempty"`
	OutputDir           string          `json:"output_dir,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	res, err := pipeline.New().Parse(input.Locator)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	g := &generator.Generator{PackageName: input.Package}
	out, err := g.Generate(res.IR)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		PackageName:         out.PackageName,
		GeneratedModels:     out.GeneratedModels,
		GeneratedOperations: out.GeneratedOperations,
		SkippedControllers:  out.SkippedControllers,
	}

	if input.OutputDir != "" {
		if err := out.WriteFiles(input.OutputDir); err != nil {
			return errResult(err), generateOutput{}, nil
		}
		output.OutputDir = input.OutputDir
		for _, f := range out.Files {
			output.Files = append(output.Files, generatedFile{Name: f.Name, Size: len(f.Content)})
		}
		return nil, output, nil
	}

	for _, f := range out.Files {
		output.Files = append(output.Files, generatedFile{
			Name:    f.Name,
			Content: string(f.Content),
			Size:    len(f.Content),
		})
	}
	return nil, output, nil
}
