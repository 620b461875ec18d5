package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oasforge/oasforge"
	"github.com/oasforge/oasforge/pipeline"
)

// parseSummary is the printable result of the parse command.
type parseSummary struct {
	Title       string              `json:"title" yaml:"title"`
	Version     string              `json:"version" yaml:"version"`
	OASVersion  string              `json:"oasVersion" yaml:"oasVersion"`
	Format      string              `json:"format" yaml:"format"`
	BaseURL     string              `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Paths       int                 `json:"paths" yaml:"paths"`
	Schemas     int                 `json:"schemas" yaml:"schemas"`
	Controllers []controllerSummary `json:"controllers" yaml:"controllers"`
}

type controllerSummary struct {
	Name       string `json:"name" yaml:"name"`
	Operations int    `json:"operations" yaml:"operations"`
}

func ParseCommand() *cobra.Command {
	var asJSON bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parse <locator>",
		Short: "Parse a document and print a structural summary",
		Long: `Parse loads an OpenAPI 3.x or Swagger 2.0 document from a URL, a file
path, or inline text, runs it through the full ingestion pipeline, and
prints a summary of what a generated client would contain.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New()
			if verbose {
				p.Logger = oasforge.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			res, err := p.Parse(args[0])
			if err != nil {
				return err
			}

			summary := parseSummary{
				Title:      res.IR.Name,
				Version:    res.IR.Version,
				OASVersion: res.Document.OpenAPIVersion,
				Format:     string(res.Format),
				BaseURL:    res.IR.BaseURL,
				Paths:      len(res.Document.Paths),
				Schemas:    len(res.Document.Components.Schemas),
			}
			for _, name := range res.IR.ControllerNames {
				summary.Controllers = append(summary.Controllers, controllerSummary{
					Name:       name,
					Operations: len(res.IR.Controllers[name]),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			data, err := yaml.Marshal(summary)
			if err != nil {
				return fmt.Errorf("cli: failed to render summary: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON instead of YAML")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")

	return cmd
}
