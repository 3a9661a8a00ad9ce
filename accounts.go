package sandbank

import (
	"context"
	"fmt"
)

// CreateAccount creates a ledger account for a customer or for the bank.
func (c *Client) CreateAccount(ctx context.Context, req PostAccount) (Account, error) {
	c.logger.Debug("creating account", "type", req.Type, "asset", req.Asset, "customer_guid", req.CustomerGUID)

	var account Account
	if err := c.api.Post(ctx, "/api/accounts", req, &account); err != nil {
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	c.logger.Info("created account", "account_guid", account.GUID, "asset", account.Asset, "state", account.State)
	return account, nil
}

// GetAccount fetches an account by GUID.
func (c *Client) GetAccount(ctx context.Context, guid string) (Account, error) {
	var account Account
	if err := c.api.Get(ctx, "/api/accounts/"+guid, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// CreateDepositAddress creates a crypto deposit address for an account.
func (c *Client) CreateDepositAddress(ctx context.Context, req PostDepositAddress) (DepositAddress, error) {
	c.logger.Debug("creating deposit address", "account_guid", req.AccountGUID)

	var address DepositAddress
	if err := c.api.Post(ctx, "/api/deposit_addresses", req, &address); err != nil {
		return DepositAddress{}, fmt.Errorf("failed to create deposit address: %w", err)
	}

	c.logger.Info("created deposit address", "deposit_address_guid", address.GUID, "state", address.State)
	return address, nil
}

// GetDepositAddress fetches a deposit address by GUID.
func (c *Client) GetDepositAddress(ctx context.Context, guid string) (DepositAddress, error) {
	var address DepositAddress
	if err := c.api.Get(ctx, "/api/deposit_addresses/"+guid, &address); err != nil {
		return DepositAddress{}, err
	}
	return address, nil
}

// CreateDepositBankAccount creates a virtual bank account customers can
// wire fiat into. Routing and beneficiary details become available once the
// account reaches "created".
func (c *Client) CreateDepositBankAccount(ctx context.Context, req PostDepositBankAccount) (DepositBankAccount, error) {
	c.logger.Debug("creating deposit bank account", "account_guid", req.AccountGUID)

	var account DepositBankAccount
	if err := c.api.Post(ctx, "/api/deposit_bank_accounts", req, &account); err != nil {
		return DepositBankAccount{}, fmt.Errorf("failed to create deposit bank account: %w", err)
	}

	c.logger.Info("created deposit bank account", "deposit_bank_account_guid", account.GUID, "state", account.State)
	return account, nil
}

// GetDepositBankAccount fetches a deposit bank account by GUID.
func (c *Client) GetDepositBankAccount(ctx context.Context, guid string) (DepositBankAccount, error) {
	var account DepositBankAccount
	if err := c.api.Get(ctx, "/api/deposit_bank_accounts/"+guid, &account); err != nil {
		return DepositBankAccount{}, err
	}
	return account, nil
}
