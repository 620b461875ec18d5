// Package generator emits a typed Go client library from a projected IR.
//
// Output is one file per concern: a client context, a models file built
// from the component schemas, and one service file per controller. Every
// request-issuing call goes through an explicit Client value owned by the
// caller; the generated code holds no package-level state.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oasforge/oasforge"
	"github.com/oasforge/oasforge/projector"
)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "models.go", "client.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating a client library
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// PackageName is the Go package name used in generation
	PackageName string
	// GeneratedModels is the count of model types generated
	GeneratedModels int
	// GeneratedOperations is the count of operation methods generated
	GeneratedOperations int
	// SkippedControllers lists declared controllers that had no operations
	SkippedControllers []string
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("generator: failed to create output directory: %w", err)
	}
	for _, file := range r.Files {
		if filepath.Base(file.Name) != file.Name {
			return fmt.Errorf("generator: invalid file name %q: must not contain path separators", file.Name)
		}
		if err := os.WriteFile(filepath.Join(outputDir, file.Name), file.Content, 0644); err != nil {
			return fmt.Errorf("generator: failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// Generator emits Go client code from a projected IR.
type Generator struct {
	// PackageName is the Go package name for generated code.
	// If empty, defaults to "api".
	PackageName string

	// UserAgent overrides the User-Agent the generated client sends.
	// If empty, a default derived from the API title is used.
	UserAgent string

	// Logger receives progress messages. Nil disables logging.
	Logger oasforge.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{}
}

// Generate emits a client library for the given IR. Declared controllers
// with no operations produce no file and are reported in
// SkippedControllers.
func (g *Generator) Generate(ir *projector.IR) (*GenerateResult, error) {
	start := time.Now()
	log := g.Logger
	if log == nil {
		log = oasforge.NopLogger{}
	}

	pkg := g.PackageName
	if pkg == "" {
		pkg = "api"
	}

	result := &GenerateResult{PackageName: pkg}

	clientSrc, err := g.emitClient(pkg, ir)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, GeneratedFile{Name: "client.go", Content: clientSrc})

	modelsSrc, modelCount, err := g.emitModels(pkg, ir)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, GeneratedFile{Name: "models.go", Content: modelsSrc})
	result.GeneratedModels = modelCount

	for _, name := range ir.ControllerNames {
		ops := ir.Controllers[name]
		if len(ops) == 0 {
			result.SkippedControllers = append(result.SkippedControllers, name)
			log.Debug("skipping controller with no operations", "controller", name)
			continue
		}
		src, err := g.emitController(pkg, name, ops)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, GeneratedFile{
			Name:    serviceFileName(name),
			Content: src,
		})
		result.GeneratedOperations += len(ops)
	}

	result.GenerateTime = time.Since(start)
	log.Info("client library generated",
		"package", pkg,
		"files", len(result.Files),
		"models", result.GeneratedModels,
		"operations", result.GeneratedOperations)
	return result, nil
}
