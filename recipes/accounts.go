package recipes

import (
	"context"

	"github.com/sandbankhq/sandbank"
)

// CustomerAccounts are the platform accounts a fully onboarded customer
// holds: a USD fiat account with fiat rails attached, and a USDC trading
// account with a deposit address.
type CustomerAccounts struct {
	Fiat               sandbank.Account
	Trading            sandbank.Account
	DepositAddress     sandbank.DepositAddress
	DepositBankAccount sandbank.DepositBankAccount
}

// CreateCustomerAccounts opens a customer's fiat and trading accounts and
// attaches deposit rails to each: a virtual bank account on the fiat side
// and a crypto deposit address on the trading side.
func CreateCustomerAccounts(ctx context.Context, c *sandbank.Client, customer sandbank.Customer) (CustomerAccounts, error) {
	var accounts CustomerAccounts

	fiat, err := c.CreateAccount(ctx, sandbank.PostAccount{
		Type:         sandbank.AccountTypeFiat,
		Asset:        sandbank.AssetUSD,
		Name:         "USD account",
		CustomerGUID: customer.GUID,
	})
	if err != nil {
		return CustomerAccounts{}, err
	}
	accounts.Fiat, err = sandbank.WaitForState(ctx, c.GetAccount, fiat,
		[]string{sandbank.StateCreated}, c.WaitOptions()...)
	if err != nil {
		return CustomerAccounts{}, err
	}

	trading, err := c.CreateAccount(ctx, sandbank.PostAccount{
		Type:         sandbank.AccountTypeTrading,
		Asset:        sandbank.AssetUSDC,
		Name:         "USDC account",
		CustomerGUID: customer.GUID,
	})
	if err != nil {
		return CustomerAccounts{}, err
	}
	accounts.Trading, err = sandbank.WaitForState(ctx, c.GetAccount, trading,
		[]string{sandbank.StateCreated}, c.WaitOptions()...)
	if err != nil {
		return CustomerAccounts{}, err
	}

	address, err := c.CreateDepositAddress(ctx, sandbank.PostDepositAddress{
		AccountGUID: accounts.Trading.GUID,
	})
	if err != nil {
		return CustomerAccounts{}, err
	}
	accounts.DepositAddress, err = sandbank.WaitForState(ctx, c.GetDepositAddress, address,
		[]string{sandbank.StateCreated}, c.WaitOptions()...)
	if err != nil {
		return CustomerAccounts{}, err
	}

	bankAccount, err := c.CreateDepositBankAccount(ctx, sandbank.PostDepositBankAccount{
		Type:        sandbank.DepositBankAccountTypeMain,
		AccountGUID: accounts.Fiat.GUID,
	})
	if err != nil {
		return CustomerAccounts{}, err
	}
	accounts.DepositBankAccount, err = sandbank.WaitForState(ctx, c.GetDepositBankAccount, bankAccount,
		[]string{sandbank.StateCreated}, c.WaitOptions()...)
	if err != nil {
		return CustomerAccounts{}, err
	}

	logger := c.Logger()
	logger.Info("customer accounts ready",
		"customer_guid", customer.GUID,
		"fiat_account_guid", accounts.Fiat.GUID,
		"trading_account_guid", accounts.Trading.GUID,
		"deposit_address", accounts.DepositAddress.Address,
	)
	for _, rd := range accounts.DepositBankAccount.RoutingDetails {
		logger.Info("deposit routing details",
			"routing_number_type", rd.RoutingNumberType,
			"routing_number", rd.RoutingNumber,
			"unique_memo_id", accounts.DepositBankAccount.UniqueMemoID,
		)
	}
	return accounts, nil
}
