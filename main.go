// Package main is the entry point for the snbench CLI application.
// It runs the social-network interactive benchmark against a configured
// database backend.
package main

import (
	"snbench/cli/cmd"
)

// main is the entry point for the snbench CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
