package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing vector-database detection and loading tools to AI agents and editor hosts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		loader := adapter.NewLoader(cfg)
		hist := openHistory(cfg)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "vecscope MCP server started on stdio (interpreter=%s)\n", cfg.Python())

		srv := mcpserver.NewServer(loader, hist)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
