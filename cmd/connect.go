// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"snbench/cli/internal/creds"
	"snbench/cli/internal/logging"
)

var (
	connectKind     string
	connectEndpoint string
)

// connectCmd represents the connect command for storing backend
// connection settings. The endpoint goes to the OS keychain together
// with the password, which is prompted for rather than passed as a
// flag so it never lands in shell history.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Store backend connection settings in the OS keychain",
	Long: `The connect command saves a backend endpoint and password in the OS
keychain. Runs resolve connection settings from the environment first
(SNBENCH_ENDPOINT, SNBENCH_PASSWORD, DATABASE_URL) and fall back to the
keychain entry stored here.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(connectEndpoint) == "" {
			return fmt.Errorf("an endpoint is required (--endpoint)")
		}

		pterm.Printf("Password for %s (empty for none): ", connectKind)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		pterm.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		store, err := creds.OpenStore()
		if err != nil {
			pterm.Println("❌ Secure storage is not available on this system")
			return err
		}

		if err := store.SaveEndpoint(connectKind, connectEndpoint, string(raw)); err != nil {
			return err
		}

		pterm.Success.Printf("Stored %s connection\n", connectKind)
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Backend Connection")).
			WithTopPadding(1).WithBottomPadding(1).WithLeftPadding(1).WithRightPadding(1).
			Println(logging.Mask(connectEndpoint))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().StringVar(&connectKind, "backend", "sparql", "Backend kind (sparql, postgres, neo4j)")
	connectCmd.Flags().StringVar(&connectEndpoint, "endpoint", "", "Backend endpoint or DSN")
}
