package main

import (
	"github.com/spf13/cobra"
)

var (
	searchType string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search a term across every database",
	Args:  cobra.ExactArgs(1),
	Run:   runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "all",
		"Field kind to search: all, name, email, title, or id")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	outputResponse(eng.UnifiedSearch(newContext(), args[0], searchType))
}
