package sandbank

import (
	"context"
	"fmt"
)

// CreateExternalWallet registers a crypto wallet held outside the platform.
func (c *Client) CreateExternalWallet(ctx context.Context, req PostExternalWallet) (ExternalWallet, error) {
	c.logger.Debug("creating external wallet",
		"asset", req.Asset,
		"customer_guid", req.CustomerGUID,
		"counterparty_guid", req.CounterpartyGUID,
	)

	var wallet ExternalWallet
	if err := c.api.Post(ctx, "/api/external_wallets", req, &wallet); err != nil {
		return ExternalWallet{}, fmt.Errorf("failed to create external wallet: %w", err)
	}

	c.logger.Info("created external wallet", "external_wallet_guid", wallet.GUID, "state", wallet.State)
	return wallet, nil
}

// GetExternalWallet fetches an external wallet by GUID.
func (c *Client) GetExternalWallet(ctx context.Context, guid string) (ExternalWallet, error) {
	var wallet ExternalWallet
	if err := c.api.Get(ctx, "/api/external_wallets/"+guid, &wallet); err != nil {
		return ExternalWallet{}, err
	}
	return wallet, nil
}

// CreatePlaidExternalBankAccount connects a customer's bank account via a
// Plaid public token and account id.
func (c *Client) CreatePlaidExternalBankAccount(ctx context.Context, name, customerGUID, publicToken, plaidAccountID string) (ExternalBankAccount, error) {
	return c.createExternalBankAccount(ctx, PostExternalBankAccount{
		Name:             name,
		AccountKind:      ExternalBankAccountKindPlaid,
		CustomerGUID:     customerGUID,
		PlaidPublicToken: publicToken,
		PlaidAccountID:   plaidAccountID,
	})
}

// CreateRawExternalBankAccount registers a counterparty's bank account from
// raw routing details, without an aggregator.
func (c *Client) CreateRawExternalBankAccount(ctx context.Context, name, counterpartyGUID string, details CounterpartyBankAccount) (ExternalBankAccount, error) {
	return c.createExternalBankAccount(ctx, PostExternalBankAccount{
		Name:                    name,
		AccountKind:             ExternalBankAccountKindRawRoutingDetails,
		CounterpartyGUID:        counterpartyGUID,
		CounterpartyBankAccount: &details,
	})
}

func (c *Client) createExternalBankAccount(ctx context.Context, req PostExternalBankAccount) (ExternalBankAccount, error) {
	c.logger.Debug("creating external bank account",
		"account_kind", req.AccountKind,
		"customer_guid", req.CustomerGUID,
		"counterparty_guid", req.CounterpartyGUID,
	)

	var account ExternalBankAccount
	if err := c.api.Post(ctx, "/api/external_bank_accounts", req, &account); err != nil {
		return ExternalBankAccount{}, fmt.Errorf("failed to create external bank account: %w", err)
	}

	c.logger.Info("created external bank account", "external_bank_account_guid", account.GUID, "state", account.State)
	return account, nil
}

// GetExternalBankAccount fetches an external bank account by GUID.
func (c *Client) GetExternalBankAccount(ctx context.Context, guid string) (ExternalBankAccount, error) {
	var account ExternalBankAccount
	if err := c.api.Get(ctx, "/api/external_bank_accounts/"+guid, &account); err != nil {
		return ExternalBankAccount{}, err
	}
	return account, nil
}
