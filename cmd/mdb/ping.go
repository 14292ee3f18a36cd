package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to every configured database",
	Args:  cobra.NoArgs,
	Run:   runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) {
	logger := newLogger()
	eng := mustGetEngine(logger)

	failures := eng.Ping(newContext())
	for _, name := range eng.Registry().Names() {
		if err, ok := failures[name]; ok {
			fmt.Printf("%s: FAILED (%v)\n", name, err)
		} else {
			fmt.Printf("%s: ok\n", name)
		}
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}
