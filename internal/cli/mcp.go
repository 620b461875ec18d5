package cli

import (
	"github.com/spf13/cobra"

	"github.com/oasforge/oasforge/internal/mcpserver"
)

func MCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing parse and generate as tools",
		Long: `MCP starts a Model Context Protocol server over stdio. The server
exposes the ingestion pipeline and the client generator as tools, so MCP
clients can inspect documents and generate client code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
