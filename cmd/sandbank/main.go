// Package main is the entry point for the sandbank CLI.
//
// The sandbank platform can be driven either as a library (SDK) or through
// this standalone binary, which runs the full set of demo flows against a
// sandbox environment.
//
// Usage:
//
//	sandbank run -c config.yaml      # Run the demo flows
//	sandbank validate -c config.yaml # Validate configuration
//	sandbank version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "sandbank",
	Short: "Demo flows for a banking-as-a-service sandbox",
	Long: `sandbank drives a banking-as-a-service sandbox end to end.

It onboards customers, opens fiat and trading accounts, links external
bank accounts through Plaid's sandbox, funds accounts, trades for USDC,
and moves value off-platform to wallets, bank accounts, and counterparties.

Quick start:
  1. Create a config file (sandbank.yaml) with your sandbox credentials
  2. Run: sandbank run -c sandbank.yaml

Example config:
  base_url: sandbox.sandbank.dev
  client_id: ${APPLICATION_CLIENT_ID}
  client_secret: ${APPLICATION_CLIENT_SECRET}
  bank_guid: ${BANK_GUID}`,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this sandbank binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sandbank %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
