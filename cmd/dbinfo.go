// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"snbench/cli/internal/creds"
	"snbench/cli/internal/logging"
)

var dbinfoKind string

// dbinfoCmd represents the dbinfo command for displaying backend
// connection information. It shows the resolved endpoint with
// credentials masked for security.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the resolved backend connection",
	Long: `The dbinfo command displays the endpoint a run would connect to, after
applying the same resolution order as snbench run: environment variables
first, then the OS keychain. Credentials in the endpoint are masked.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		source := "OS keychain"
		if env := strings.TrimSpace(os.Getenv("SNBENCH_ENDPOINT")); env != "" {
			source = "SNBENCH_ENDPOINT environment variable"
		} else if dbinfoKind == "postgres" &&
			strings.TrimSpace(os.Getenv("DATABASE_URL")) != "" {
			source = "DATABASE_URL environment variable"
		}

		endpoint, _, err := creds.ResolveEndpoint(dbinfoKind)
		if err != nil {
			if errors.Is(err, creds.ErrNotFound) {
				pterm.Println("⚠️  No connection configured for " + dbinfoKind)
				pterm.Println("   Please run: snbench connect --backend " + dbinfoKind)
				return nil
			}
			return err
		}

		pterm.Println("Using endpoint from " + source)
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Backend Connection")).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println(logging.Mask(endpoint))
		pterm.Println()
		pterm.Println("To update this connection, run: snbench connect --backend " + dbinfoKind)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)

	dbinfoCmd.Flags().StringVar(&dbinfoKind, "backend", "sparql", "Backend kind (sparql, postgres, neo4j)")
}
