// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"snbench/cli/internal/creds"
)

var disconnectKind string

// disconnectCmd represents the disconnect command for removing stored
// backend credentials from the OS keychain.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove stored backend credentials from the OS keychain",
	Long: `The disconnect command deletes the endpoint and password stored for a
backend kind. Environment variables (SNBENCH_ENDPOINT, SNBENCH_PASSWORD,
DATABASE_URL) are not touched.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := creds.OpenStore()
		if err != nil {
			return err
		}
		if err := store.DeleteEndpoint(disconnectKind); err != nil {
			return err
		}

		fmt.Printf("✅ Stored credentials for %s have been removed\n", disconnectKind)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)

	disconnectCmd.Flags().StringVar(&disconnectKind, "backend", "sparql", "Backend kind (sparql, postgres, neo4j)")
}
