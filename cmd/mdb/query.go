package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask a natural-language question",
	Long:  "Route a natural-language question to the most relevant database and answer it",
	Args:  cobra.MinimumNArgs(1),
	Run:   runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	question := strings.Join(args, " ")
	outputResponse(eng.Query(newContext(), question))
}
