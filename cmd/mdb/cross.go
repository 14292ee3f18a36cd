package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	crossDatabases []string
)

var crossCmd = &cobra.Command{
	Use:   "cross <description>",
	Short: "Run a question across multiple databases",
	Long:  "Fan a question out to multiple databases and combine the results",
	Args:  cobra.MinimumNArgs(1),
	Run:   runCross,
}

func init() {
	crossCmd.Flags().StringSliceVar(&crossDatabases, "databases", nil,
		"Databases to query (default: auto-detect from the question)")
	rootCmd.AddCommand(crossCmd)
}

func runCross(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	description := strings.Join(args, " ")
	outputResponse(eng.CrossQuery(newContext(), description, crossDatabases))
}
