package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandbankhq/sandbank"
	"github.com/sandbankhq/sandbank/recipes"
)

// Onboards a customer in a sandbox environment and opens their accounts.
//
// Requires sandbox credentials:
//
//	BASE_URL=sandbox.sandbank.dev \
//	APPLICATION_CLIENT_ID=... \
//	APPLICATION_CLIENT_SECRET=... \
//	go run ./example
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := sandbank.New(os.Getenv("BASE_URL"),
		sandbank.WithClientCredentials(
			os.Getenv("APPLICATION_CLIENT_ID"),
			os.Getenv("APPLICATION_CLIENT_SECRET"),
		),
		sandbank.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Authenticate(ctx); err != nil {
		logger.Error("failed to authenticate", "error", err)
		os.Exit(1)
	}

	customer, err := recipes.CreateIndividualCustomer(ctx, client)
	if err != nil {
		logger.Error("failed to onboard customer", "error", err)
		os.Exit(1)
	}

	accounts, err := recipes.CreateCustomerAccounts(ctx, client, customer)
	if err != nil {
		logger.Error("failed to open accounts", "error", err)
		os.Exit(1)
	}

	logger.Info("ready to transact",
		"customer_guid", customer.GUID,
		"fiat_account_guid", accounts.Fiat.GUID,
		"trading_account_guid", accounts.Trading.GUID,
	)
}
