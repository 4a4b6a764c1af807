// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"snbench/cli/internal/bench"
	"snbench/cli/internal/config"
	"snbench/cli/internal/creds"
	"snbench/cli/internal/interactive"
	"snbench/cli/internal/registry"

	_ "snbench/cli/internal/backend/cypher"
	_ "snbench/cli/internal/backend/postgres"
	_ "snbench/cli/internal/backend/sparql"
)

var (
	validateConfigPath string
	validateFile       string
)

// validateCmd represents the validate command, which checks the
// backend's answers against an expected-results file instead of
// measuring latency.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate backend answers against expected results",
	Long: `The validate command dispatches each operation from a validation file
exactly once and compares the mapped results with the expected rows the
file carries. Operations without a registered handler are skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(validateConfigPath)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.Flag("log-level").Changed, cfg.LogLevel)

		if cfg.Backend.Endpoint == "" || cfg.Backend.Password == "" {
			endpoint, password, err := creds.ResolveEndpoint(cfg.Backend.Kind)
			if err != nil && !errors.Is(err, creds.ErrNotFound) {
				return err
			}
			if cfg.Backend.Endpoint == "" {
				cfg.Backend.Endpoint = endpoint
			}
			if cfg.Backend.Password == "" {
				cfg.Backend.Password = password
			}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		f, err := os.Open(validateFile)
		if err != nil {
			return fmt.Errorf("open validation file %s: %w", validateFile, err)
		}
		expectations, err := bench.ReadExpectations(f)
		f.Close()
		if err != nil {
			return err
		}

		reg := registry.New()
		if err := interactive.Register(reg); err != nil {
			return err
		}

		ctx := cmd.Context()
		// Validation is sequential: one worker, one connection.
		if err := reg.Init(ctx, cfg.Backend, cfg.Templates, 1); err != nil {
			return err
		}
		defer reg.Close(ctx)

		runner := bench.NewRunner(logger, reg)
		result, err := runner.Validate(ctx, expectations)
		if err != nil {
			return err
		}

		pterm.Println()
		if result.Failed == 0 {
			pterm.Success.Printf("Validation passed: %d/%d checks (%d skipped)\n",
				result.Passed, result.Checked, result.Skipped)
			return nil
		}

		pterm.Error.Printf("Validation failed: %d of %d checks\n",
			result.Failed, result.Checked)
		for _, mismatch := range result.Mismatches {
			pterm.Println("  " + mismatch)
		}

		return fmt.Errorf("%d validation failures", result.Failed)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "snbench.yaml", "Path to YAML config file")
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Validation JSONL file (operation + expected results per line)")
	validateCmd.MarkFlagRequired("file")
}
