package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandbankhq/sandbank"
	"github.com/sandbankhq/sandbank/config"
	"github.com/sandbankhq/sandbank/internal/plaid"
	"github.com/sandbankhq/sandbank/recipes"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd executes the full demo sequence against a sandbox environment.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo flows",
	Long: `Run the full demo sequence against a sandbox environment.

The sequence onboards two customers, opens their accounts, links an
external bank account via Plaid's sandbox, funds the first customer,
trades for USDC, registers a wallet, off-ramps USDC and USD, onboards a
business counterparty with its own payment rails, moves money between the
two customers, and finally pays the counterparty.

Configuration is read from the YAML file given with --config, or from
environment variables (BASE_URL, APPLICATION_CLIENT_ID, ...) when no file
is given.

Example:
  sandbank run -c sandbank.yaml
  sandbank run`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (defaults to environment variables)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.FromEnv()
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("config loaded", "base_url", cfg.BaseURL, "bank_guid", cfg.BankGUID)

	client, err := sandbank.New(cfg.BaseURL,
		sandbank.WithURLScheme(cfg.URLScheme),
		sandbank.WithClientCredentials(cfg.ClientID, cfg.ClientSecret),
		sandbank.WithLogger(logger),
		sandbank.WithWaitAttempts(cfg.WaitAttempts),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Authenticate(ctx); err != nil {
		return err
	}

	linker := &plaid.Client{
		ClientID: cfg.Plaid.ClientID,
		Secret:   cfg.Plaid.SandboxSecret,
	}

	return runSequence(ctx, client, linker)
}

// runSequence is the demo flow ordering. Each step depends on the
// resources the previous steps settled.
func runSequence(ctx context.Context, client *sandbank.Client, linker recipes.BankLinker) error {
	alice, err := recipes.CreateIndividualCustomer(ctx, client)
	if err != nil {
		return err
	}
	bob, err := recipes.CreateIndividualCustomer(ctx, client)
	if err != nil {
		return err
	}

	aliceAccounts, err := recipes.CreateCustomerAccounts(ctx, client, alice)
	if err != nil {
		return err
	}
	bobAccounts, err := recipes.CreateCustomerAccounts(ctx, client, bob)
	if err != nil {
		return err
	}

	bankAccount, err := recipes.CreateExternalBankAccount(ctx, client, linker, alice)
	if err != nil {
		return err
	}

	fiat, err := recipes.FundFiatAccount(ctx, client, alice, aliceAccounts.Fiat, bankAccount)
	if err != nil {
		return err
	}

	if _, err := recipes.TradeForUSDC(ctx, client, alice, fiat, aliceAccounts.Trading); err != nil {
		return err
	}

	wallet, err := recipes.CreateExternalWallet(ctx, client, alice)
	if err != nil {
		return err
	}
	if _, err := recipes.OffRampUSDC(ctx, client, alice, aliceAccounts.Trading, wallet); err != nil {
		return err
	}
	if _, err := recipes.OffRampUSD(ctx, client, alice, fiat, bankAccount); err != nil {
		return err
	}

	counterparty, err := recipes.CreateCounterparty(ctx, client, alice)
	if err != nil {
		return err
	}
	counterpartyAccounts, err := recipes.CreateCounterpartyAccounts(ctx, client, counterparty)
	if err != nil {
		return err
	}

	if _, err := recipes.P2PTransfer(ctx, client, alice, aliceAccounts.Fiat, bob, bobAccounts.Fiat); err != nil {
		return err
	}

	if _, err := recipes.CounterpartyPayment(ctx, client, alice, aliceAccounts.Trading, counterparty, counterpartyAccounts.Wallet); err != nil {
		return err
	}

	client.Logger().Info("demo sequence completed")
	return nil
}
