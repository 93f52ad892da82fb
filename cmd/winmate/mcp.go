package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"winmate"
	mcpadapter "winmate/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Exposes the action catalog, request routing, execution, system status and
journal as MCP tools over stdin/stdout, for use by MCP-capable clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		// stdout carries the protocol, keep stray log output on stderr.
		log.SetOutput(os.Stderr)

		srv := mcpadapter.NewServer(winmate.Version, app.Catalog, app.Router, app.Executor, app.Collector, app.Journal)
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
