// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the snbench
// application. It implements subcommands for running the interactive
// benchmark, validating backend answers, generating smoke workloads,
// and managing backend connections, using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	logLevel    string
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:           "snbench",
	Short:         "Social-network interactive benchmark harness",
	Long: `Snbench runs the social-network interactive benchmark against a SPARQL
endpoint, PostgreSQL, or Neo4j, dispatching a workload of typed operations
through per-backend query templates and recording latency and validation
results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("snbench %s\n", Version)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// newLogger builds the slog logger commands share. An explicit
// --log-level flag wins; otherwise the config file's level applies.
func newLogger(flagSet bool, cfgLevel string) *slog.Logger {
	level := logLevel
	if !flagSet && cfgLevel != "" {
		level = cfgLevel
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
