// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"atomicgo.dev/cursor"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"snbench/cli/internal/bench"
	"snbench/cli/internal/config"
	"snbench/cli/internal/creds"
	"snbench/cli/internal/interactive"
	"snbench/cli/internal/logging"
	"snbench/cli/internal/registry"
	"snbench/cli/internal/report"
	"snbench/cli/internal/workload"
	"snbench/cli/internal/xdg"

	// Wire the supported backends into the factory.
	_ "snbench/cli/internal/backend/cypher"
	_ "snbench/cli/internal/backend/postgres"
	_ "snbench/cli/internal/backend/sparql"
)

var (
	runConfigPath   string
	runBackendKind  string
	runEndpoint     string
	runUser         string
	runDatabase     string
	runTemplates    string
	runWorkloadPath string
	runWorkers      int
	runMaxOps       int
	runJSONOut      string
)

// runCmd represents the run command, which executes a workload against
// the configured backend and prints a latency report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive benchmark workload",
	Long: `The run command loads a JSONL workload, opens one backend connection per
worker, dispatches every operation through the registered query handlers,
and reports per-operation latency statistics.

Settings come from the YAML config file and can be overridden per flag.
Passwords are never taken from flags; they come from the environment or
the OS keychain (see: snbench connect).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath)
		if err != nil {
			return err
		}
		applyRunFlags(&cfg)
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

		workloadFile, err := os.Open(cfg.Workload)
		if err != nil {
			return fmt.Errorf("open workload %s: %w", cfg.Workload, err)
		}
		ops, err := workload.ReadAll(workloadFile)
		workloadFile.Close()
		if err != nil {
			return err
		}
		if cfg.MaxOperations > 0 && len(ops) > cfg.MaxOperations {
			ops = ops[:cfg.MaxOperations]
		}
		if len(ops) == 0 {
			return fmt.Errorf("workload %s contains no operations", cfg.Workload)
		}

		pterm.Println()
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Backend:  ") +
			pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(cfg.Backend.Kind))
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Endpoint: ") +
			pterm.NewStyle(pterm.FgLightBlue).Sprint(logging.Mask(cfg.Backend.Endpoint)))
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Workload: ") +
			fmt.Sprintf("%s (%d operations, %d workers)", cfg.Workload, len(ops), cfg.Workers))
		pterm.Println()

		reg := registry.New()
		if err := interactive.Register(reg); err != nil {
			return err
		}

		unsupported := make(map[string]int)
		for _, op := range ops {
			if !reg.Registered(op.Kind()) {
				unsupported[op.Kind().String()]++
			}
		}
		for kind, count := range unsupported {
			logger.Warn("no handler registered, operations will be skipped",
				slog.String("kind", kind),
				slog.Int("count", count),
			)
		}

		ctx := cmd.Context()
		if err := reg.Init(ctx, cfg.Backend, cfg.Templates, cfg.Workers); err != nil {
			return err
		}
		defer reg.Close(ctx)

		cursor.Hide()
		defer cursor.Show()

		progress, _ := pterm.DefaultProgressbar.
			WithTotal(len(ops)).
			WithTitle("Dispatching").
			Start()

		runner := bench.NewRunner(logger, reg)
		result, runErr := runner.Run(ctx, cfg.Backend.Kind, ops, func() {
			progress.Increment()
		})
		progress.Stop()

		if runErr != nil {
			return fmt.Errorf("benchmark run aborted: %w", runErr)
		}

		rep := report.Build(result)
		pterm.Println()
		if err := report.WriteTable(os.Stdout, rep); err != nil {
			return err
		}

		jsonPath := runJSONOut
		if jsonPath == "" {
			// Keep a copy of every run in the state dir for later comparison.
			dir, err := xdg.StateDir()
			if err != nil {
				return err
			}
			jsonPath = filepath.Join(dir, "run-"+rep.RunID+".json")
		}

		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", jsonPath, err)
		}
		defer f.Close()
		if err := report.WriteJSON(f, rep); err != nil {
			return err
		}
		pterm.Println()
		pterm.Printf("JSON report written to %s\n", jsonPath)

		return nil
	},
}

func applyRunFlags(cfg *config.Config) {
	if runBackendKind != "" {
		cfg.Backend.Kind = runBackendKind
	}
	if runEndpoint != "" {
		cfg.Backend.Endpoint = runEndpoint
	}
	if runUser != "" {
		cfg.Backend.User = runUser
	}
	if runDatabase != "" {
		cfg.Backend.Database = runDatabase
	}
	if runTemplates != "" {
		cfg.Templates = runTemplates
	}
	if runWorkloadPath != "" {
		cfg.Workload = runWorkloadPath
	}
	if runWorkers > 0 {
		cfg.Workers = runWorkers
	}
	if runMaxOps > 0 {
		cfg.MaxOperations = runMaxOps
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "snbench.yaml", "Path to YAML config file")
	runCmd.Flags().StringVar(&runBackendKind, "backend", "", "Backend kind (sparql, postgres, neo4j)")
	runCmd.Flags().StringVar(&runEndpoint, "endpoint", "", "Backend endpoint or DSN")
	runCmd.Flags().StringVar(&runUser, "user", "", "Backend user")
	runCmd.Flags().StringVar(&runDatabase, "database", "", "Backend database name")
	runCmd.Flags().StringVar(&runTemplates, "templates", "", "Query template directory")
	runCmd.Flags().StringVarP(&runWorkloadPath, "workload", "w", "", "JSONL workload file")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Number of workers (one connection each)")
	runCmd.Flags().IntVar(&runMaxOps, "max-ops", 0, "Truncate the workload after N operations")
	runCmd.Flags().StringVar(&runJSONOut, "json-out", "", "Write the JSON report to this file instead of the state dir")
}
