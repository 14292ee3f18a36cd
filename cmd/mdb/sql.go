package main

import (
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <database> <statement>",
	Short: "Execute SQL against one database",
	Args:  cobra.ExactArgs(2),
	Run:   runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	outputResponse(eng.ExecuteSQL(newContext(), args[0], args[1]))
}
