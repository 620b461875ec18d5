// Package cli wires the oasforge commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "oasforge",
		Short:   "oasforge - generate typed API clients from OpenAPI and Swagger documents",
		Version: oasforge.Version(),

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(ParseCommand())
	root.AddCommand(GenerateCommand())
	root.AddCommand(MCPCommand())

	return root
}
