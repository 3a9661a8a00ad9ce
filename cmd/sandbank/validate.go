package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd validates a config file without running any flows.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a sandbank configuration file without running any flows.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  sandbank validate -c sandbank.yaml
  sandbank validate --config /etc/sandbank/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (defaults to environment variables)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URL:      %s://%s\n", cfg.URLScheme, cfg.BaseURL)
	fmt.Printf("  Bank GUID:     %s\n", cfg.BankGUID)
	fmt.Printf("  Wait attempts: %d\n", cfg.WaitAttempts)
	if cfg.Plaid.ClientID != "" {
		fmt.Printf("  Plaid:         configured\n")
	} else {
		fmt.Printf("  Plaid:         not configured\n")
	}
	if cfg.AttestationSigningKey != "" {
		fmt.Printf("  Attestation:   configured (key %s)\n", cfg.VerificationKeyGUID)
	} else {
		fmt.Printf("  Attestation:   not configured\n")
	}

	return nil
}
