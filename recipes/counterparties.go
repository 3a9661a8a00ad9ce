package recipes

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sandbankhq/sandbank"
	"github.com/sandbankhq/sandbank/internal/mockdata"
)

// testRoutingNumber is a well-known test financial institution's ABA
// routing number, accepted by the sandbox.
const testRoutingNumber = "021000021"

// CounterpartyAccounts are the payment rails registered for a counterparty:
// a USDC wallet and a fiat bank account from raw routing details.
type CounterpartyAccounts struct {
	Wallet      sandbank.ExternalWallet
	BankAccount sandbank.ExternalBankAccount
}

// CreateCounterparty registers a fictional US business as a counterparty of
// the customer, runs it through a watchlists verification, and waits until
// it is verified.
func CreateCounterparty(ctx context.Context, c *sandbank.Client, customer sandbank.Customer) (sandbank.Counterparty, error) {
	business := mockdata.USBusiness()

	req := sandbank.PostCounterparty{
		Type:         sandbank.CounterpartyTypeBusiness,
		CustomerGUID: customer.GUID,
		Name:         sandbank.Name{Full: business.Name},
		Address: sandbank.Address{
			Street:      business.Address.Street,
			Street2:     business.Address.Street2,
			City:        business.Address.City,
			Subdivision: business.Address.Subdivision,
			PostalCode:  business.Address.PostalCode,
			CountryCode: business.Address.CountryCode,
		},
	}
	if business.Alias != "" {
		req.Aliases = []sandbank.Alias{{Full: business.Alias}}
	}

	counterparty, err := c.CreateCounterparty(ctx, req)
	if err != nil {
		return sandbank.Counterparty{}, err
	}
	counterparty, err = sandbank.WaitForState(ctx, c.GetCounterparty, counterparty,
		[]string{sandbank.StateUnverified}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Counterparty{}, err
	}

	verification, err := c.CreateIdentityVerification(ctx, sandbank.PostIdentityVerification{
		Type:               sandbank.VerificationTypeCounterparty,
		Method:             sandbank.VerificationMethodWatchlists,
		CounterpartyGUID:   counterparty.GUID,
		ExpectedBehaviours: []string{sandbank.ExpectedBehaviourPassedImmediately},
	})
	if err != nil {
		return sandbank.Counterparty{}, err
	}
	verification, err = sandbank.WaitForState(ctx, c.GetIdentityVerification, verification,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Counterparty{}, err
	}
	if verification.Outcome != sandbank.OutcomePassed {
		return sandbank.Counterparty{}, fmt.Errorf("%w: verification %s outcome %q",
			ErrVerificationFailed, verification.GUID, verification.Outcome)
	}

	counterparty, err = sandbank.WaitForState(ctx, c.GetCounterparty, counterparty,
		[]string{sandbank.StateVerified}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Counterparty{}, err
	}

	c.Logger().Info("counterparty verified", "counterparty_guid", counterparty.GUID, "name", counterparty.Name.Full)
	return counterparty, nil
}

// CreateCounterpartyAccounts registers the counterparty's payment rails: a
// USDC wallet and an external bank account built from raw routing details
// against a test financial institution.
func CreateCounterpartyAccounts(ctx context.Context, c *sandbank.Client, counterparty sandbank.Counterparty) (CounterpartyAccounts, error) {
	var accounts CounterpartyAccounts

	address, err := randomWalletAddress()
	if err != nil {
		return CounterpartyAccounts{}, err
	}
	wallet, err := c.CreateExternalWallet(ctx, sandbank.PostExternalWallet{
		Name:             counterparty.Name.Full + " USDC wallet",
		Asset:            sandbank.AssetUSDC,
		Address:          address,
		CounterpartyGUID: counterparty.GUID,
	})
	if err != nil {
		return CounterpartyAccounts{}, err
	}
	accounts.Wallet, err = sandbank.WaitForState(ctx, c.GetExternalWallet, wallet,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return CounterpartyAccounts{}, err
	}

	bankAccount, err := c.CreateRawExternalBankAccount(ctx,
		counterparty.Name.Full+" checking",
		counterparty.GUID,
		sandbank.CounterpartyBankAccount{
			RoutingNumberType: sandbank.RoutingNumberTypeABA,
			RoutingNumber:     testRoutingNumber,
			AccountNumber:     gofakeit.Numerify("##########"),
		},
	)
	if err != nil {
		return CounterpartyAccounts{}, err
	}
	accounts.BankAccount, err = sandbank.WaitForState(ctx, c.GetExternalBankAccount, bankAccount,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return CounterpartyAccounts{}, err
	}

	c.Logger().Info("counterparty accounts ready",
		"counterparty_guid", counterparty.GUID,
		"external_wallet_guid", accounts.Wallet.GUID,
		"external_bank_account_guid", accounts.BankAccount.GUID,
	)
	return accounts, nil
}
