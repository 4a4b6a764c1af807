// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"snbench/cli/internal/workload"
)

var (
	workloadOut     string
	workloadOps     int
	workloadPersons int64
	workloadSeed    int64
)

// workloadCmd represents the workload command, which generates a
// deterministic smoke workload for end-to-end testing against a loaded
// database. Real benchmark runs use parameters produced by the external
// data generator.
var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Generate a deterministic smoke workload",
	Long: `The workload command writes a JSONL operation stream drawn from the
complex read mix, seeded for reproducibility. It exists for smoke testing
a freshly loaded database; substitution parameters for real runs come
from the external data generator.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := os.Create(workloadOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", workloadOut, err)
		}
		defer out.Close()

		gen := workload.NewGenerator(workload.Config{
			Operations: workloadOps,
			Persons:    workloadPersons,
			Seed:       workloadSeed,
		})

		summary, err := gen.Generate(out)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Wrote %d operations to %s\n", summary.TotalOperations, workloadOut)

		kinds := make([]string, 0, len(summary.PerKind))
		for k := range summary.PerKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)

		rows := pterm.TableData{{"Operation", "Count"}}
		for _, k := range kinds {
			rows = append(rows, []string{k, fmt.Sprintf("%d", summary.PerKind[k])})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workloadCmd)

	workloadCmd.Flags().StringVarP(&workloadOut, "out", "o", "workload.jsonl", "Output JSONL file")
	workloadCmd.Flags().IntVarP(&workloadOps, "operations", "n", 1000, "Number of operations to generate")
	workloadCmd.Flags().Int64Var(&workloadPersons, "persons", 10000, "Person id range in the loaded dataset")
	workloadCmd.Flags().Int64Var(&workloadSeed, "seed", 42, "Random seed")
}
