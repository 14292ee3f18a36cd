package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <metric>",
	Short: "Compute aggregate statistics across databases",
	Long:  "Compute one metric across every database: total_records, customers, payments, or entity_counts",
	Args:  cobra.ExactArgs(1),
	Run:   runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	outputResponse(eng.AggregateStats(newContext(), args[0]))
}
