package main

import (
	"github.com/spf13/cobra"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List the configured databases",
	Args:  cobra.NoArgs,
	Run:   runDatabases,
}

func init() {
	rootCmd.AddCommand(databasesCmd)
}

func runDatabases(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	outputResponse(eng.ListSources())
}
