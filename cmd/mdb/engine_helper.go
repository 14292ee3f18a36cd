package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"mdb/internal/config"
	"mdb/internal/engine"
	"mdb/internal/envelope"
	"mdb/internal/executor"
	"mdb/internal/logging"
	"mdb/internal/schema"
	"mdb/internal/source"
)

var (
	engineOnce   sync.Once
	sharedEngine *engine.Engine
	engineErr    error
)

// getEngine returns a shared engine instance, lazily initialized on
// first use.
func getEngine(logger *slog.Logger) (*engine.Engine, error) {
	engineOnce.Do(func() {
		root, err := os.Getwd()
		if err != nil {
			engineErr = err
			return
		}

		cfg, err := config.LoadConfig(root)
		if err != nil {
			logger.Warn("failed to load config, using defaults", "error", err.Error())
			cfg = config.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			engineErr = err
			return
		}

		registry := source.NewRegistry(cfg.Sources)
		exec := executor.NewSQLExecutor(registry, logger)
		schemas := schema.NewCache(exec, logger)

		sharedEngine = engine.New(registry, exec, schemas, cfg.Limits, logger)
	})

	return sharedEngine, engineErr
}

// mustGetEngine returns the shared engine or exits on error.
func mustGetEngine(logger *slog.Logger) *engine.Engine {
	eng, err := getEngine(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	return eng
}

// newContext creates a context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a stderr logger at the configured level, so stdout
// stays clean for command output.
func newLogger() *slog.Logger {
	return logging.NewLogger(os.Stderr, logging.LevelFromString(logLevelFlag))
}

// printResponse writes an envelope to the writer as indented JSON.
func printResponse(w io.Writer, resp *envelope.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// outputResponse prints a response or exits on error.
func outputResponse(resp *envelope.Response, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := printResponse(os.Stdout, resp); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}
