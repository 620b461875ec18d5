package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge"
	"github.com/oasforge/oasforge/generator"
	"github.com/oasforge/oasforge/internal/config"
	"github.com/oasforge/oasforge/pipeline"
)

func GenerateCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate [locator]",
		Short: "Generate a typed Go client library from a document",
		Long: `Generate runs a document through the ingestion pipeline and emits a Go
client package: a client context, model types for the component schemas,
and one service per controller. Settings come from flags merged over an
optional oasforge.yaml config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := ""
			if len(args) > 0 {
				locator = args[0]
			}
			cfg, err := config.Load(cmd, locator)
			if err != nil {
				return err
			}

			var log oasforge.Logger = oasforge.NopLogger{}
			if verbose {
				log = oasforge.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			p := pipeline.New()
			p.Logger = log
			p.MaxDepth = cfg.MaxDepth
			res, err := p.Parse(cfg.Locator)
			if err != nil {
				return err
			}

			g := &generator.Generator{
				PackageName: cfg.Package,
				UserAgent:   cfg.UserAgent,
				Logger:      log,
			}
			out, err := g.Generate(res.IR)
			if err != nil {
				return err
			}

			if cfg.DryRun {
				for _, f := range out.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", f.Name, len(f.Content))
				}
				return nil
			}
			if err := out.WriteFiles(cfg.OutputDir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %d files in %s (%d models, %d operations)\n",
				len(out.Files), cfg.OutputDir, out.GeneratedModels, out.GeneratedOperations)
			for _, skipped := range out.SkippedControllers {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped controller %q: no operations\n", skipped)
			}
			return nil
		},
	}

	config.BindGenerateFlags(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")

	return cmd
}
