package main

import (
	"github.com/spf13/cobra"
)

var (
	schemaTable string
)

var schemaCmd = &cobra.Command{
	Use:   "schema <database>",
	Short: "Inspect a database's schema",
	Long:  "List a database's tables, or describe one table's columns and row count",
	Args:  cobra.ExactArgs(1),
	Run:   runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaTable, "table", "", "Table to describe")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	outputResponse(eng.SchemaInfo(newContext(), args[0], schemaTable))
}
