package main

import (
	"github.com/spf13/cobra"

	"mdb/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mdb",
	Short: "MDB - Multi-Database Query Server",
	Long: `MDB routes natural-language questions across multiple databases.
Questions are classified to the most relevant source, answered through
per-source query templates, and can be fanned out for cross-database
comparison, unified search, and aggregate statistics.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("MDB version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, or error")
}
