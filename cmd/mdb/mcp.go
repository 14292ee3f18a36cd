package main

import (
	"os"

	"github.com/spf13/cobra"

	"mdb/internal/logging"
	"mdb/internal/mcp"
	"mdb/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using JSON-RPC 2.0 and exposes the
following tools:
  - query: route a natural-language question to the right database
  - cross_database_query: run a question across multiple databases
  - sql: execute SQL directly against one database
  - schema: inspect tables and columns
  - databases: list the configured databases
  - unified_search: search a term across every database
  - aggregate_stats: compute aggregate statistics across databases

This command is typically invoked by MCP clients and not directly by
users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Logs go to stderr since stdout carries the MCP protocol
	logger := logging.NewJSONLogger(os.Stderr, logging.LevelFromString(logLevelFlag))

	logger.Info("starting MCP server", "version", version.Version)

	eng := mustGetEngine(logger)

	// Probe connectivity up front so broken sources are visible in the
	// logs; the server still starts with whatever is reachable.
	failures := eng.Ping(newContext())
	for name, err := range failures {
		logger.Warn("source unreachable at startup", "source", name, "error", err.Error())
	}
	if len(failures) == 0 {
		logger.Info("all sources reachable")
	}

	server := mcp.NewMCPServer(version.Version, eng, logger)

	if err := server.Start(); err != nil {
		logger.Error("MCP server error", "error", err.Error())
		return err
	}

	return nil
}
