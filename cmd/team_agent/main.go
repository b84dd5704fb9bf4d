// Package main provides the entry point for the team composer service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "team_agent",
	Short: "Team composition and matching engine",
	Long:  "Team Agent ranks employees against team requirement sets, coordinates exclusive team membership, and generates team composition proposals with a deterministic fallback when the generative collaborator is unavailable.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
