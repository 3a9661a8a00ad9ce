package recipes

import (
	"context"
	"fmt"

	"github.com/sandbankhq/sandbank"
)

// fundingDepositAmount is $100.00 in cents.
const fundingDepositAmount = 10_000

// usdWithdrawalAmount is $15.00 in cents.
const usdWithdrawalAmount = 1_500

// BankLinker supplies the result of a completed bank-linking session: a
// public token and the selected account id. In the sandbox this is driven
// programmatically; a real deployment would run Plaid Link in a browser.
type BankLinker interface {
	OnSuccess(ctx context.Context) (publicToken, accountID string, err error)
}

// CreateExternalBankAccount connects a customer's bank account: it runs a
// link-token workflow, completes the linking session via the supplied
// linker, registers the external bank account, and verifies ownership.
func CreateExternalBankAccount(ctx context.Context, c *sandbank.Client, linker BankLinker, customer sandbank.Customer) (sandbank.ExternalBankAccount, error) {
	workflow, err := c.CreateWorkflow(ctx, sandbank.PostWorkflow{
		Type:         sandbank.WorkflowTypePlaid,
		Kind:         sandbank.WorkflowKindLinkTokenCreate,
		CustomerGUID: customer.GUID,
		Language:     "en",
	})
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	workflow, err = sandbank.WaitForState(ctx, c.GetWorkflow, workflow,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	if workflow.PlaidLinkToken == "" {
		return sandbank.ExternalBankAccount{}, fmt.Errorf("workflow %s completed without a link token", workflow.GUID)
	}

	publicToken, accountID, err := linker.OnSuccess(ctx)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}

	account, err := c.CreatePlaidExternalBankAccount(ctx, "Checking", customer.GUID, publicToken, accountID)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	account, err = sandbank.WaitForState(ctx, c.GetExternalBankAccount, account,
		[]string{sandbank.StateUnverified, sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	if account.State == sandbank.StateCompleted {
		return account, nil
	}

	verification, err := c.CreateIdentityVerification(ctx, sandbank.PostIdentityVerification{
		Type:                    sandbank.VerificationTypeBankAccount,
		Method:                  sandbank.VerificationMethodAccountOwnership,
		CustomerGUID:            customer.GUID,
		ExternalBankAccountGUID: account.GUID,
	})
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	verification, err = sandbank.WaitForState(ctx, c.GetIdentityVerification, verification,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}
	if verification.Outcome != sandbank.OutcomePassed {
		return sandbank.ExternalBankAccount{}, fmt.Errorf("%w: verification %s outcome %q",
			ErrVerificationFailed, verification.GUID, verification.Outcome)
	}

	account, err = sandbank.WaitForState(ctx, c.GetExternalBankAccount, account,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.ExternalBankAccount{}, err
	}

	c.Logger().Info("external bank account connected", "external_bank_account_guid", account.GUID)
	return account, nil
}

// FundFiatAccount deposits $100.00 into a customer's fiat account from
// their connected external bank account and returns the refreshed account.
func FundFiatAccount(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, fiatAccount sandbank.Account, bankAccount sandbank.ExternalBankAccount) (sandbank.Account, error) {
	quote, err := c.CreateQuote(ctx, sandbank.PostQuote{
		ProductType:   sandbank.QuoteProductTypeFunding,
		CustomerGUID:  customer.GUID,
		Asset:         sandbank.AssetUSD,
		Side:          sandbank.QuoteSideDeposit,
		ReceiveAmount: fundingDepositAmount,
	})
	if err != nil {
		return sandbank.Account{}, err
	}

	// Every transfer names its ultimate originating and receiving
	// beneficiaries (Travel Rule). For a customer funding their own fiat
	// account both sides are the customer.
	transfer, err := c.CreateTransfer(ctx, sandbank.PostTransfer{
		QuoteGUID:               quote.GUID,
		TransferType:            sandbank.TransferTypeFunding,
		ExternalBankAccountGUID: bankAccount.GUID,
		SourceParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: quote.DeliverAmount},
		},
		DestinationParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: quote.ReceiveAmount},
		},
	})
	if err != nil {
		return sandbank.Account{}, err
	}
	if _, err := sandbank.WaitForState(ctx, c.GetTransfer, transfer,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...); err != nil {
		return sandbank.Account{}, err
	}

	account, err := c.GetAccount(ctx, fiatAccount.GUID)
	if err != nil {
		return sandbank.Account{}, err
	}

	c.Logger().Info("fiat account funded",
		"account_guid", account.GUID,
		"platform_balance", account.PlatformBalance,
		"platform_available", account.PlatformAvailable,
	)
	return account, nil
}

// OffRampUSD withdraws $15.00 from a customer's fiat account to their
// external bank account over the RTP rail and logs the account's
// remaining available balance.
func OffRampUSD(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, fiatAccount sandbank.Account, bankAccount sandbank.ExternalBankAccount) (sandbank.Transfer, error) {
	quote, err := c.CreateQuote(ctx, sandbank.PostQuote{
		ProductType:   sandbank.QuoteProductTypeFunding,
		CustomerGUID:  customer.GUID,
		Asset:         sandbank.AssetUSD,
		Side:          sandbank.QuoteSideWithdrawal,
		ReceiveAmount: usdWithdrawalAmount,
	})
	if err != nil {
		return sandbank.Transfer{}, err
	}

	transfer, err := c.CreateTransfer(ctx, sandbank.PostTransfer{
		QuoteGUID:               quote.GUID,
		TransferType:            sandbank.TransferTypeFunding,
		ExternalBankAccountGUID: bankAccount.GUID,
		PaymentRail:             sandbank.PaymentRailRTP,
		SourceParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: quote.DeliverAmount},
		},
		DestinationParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: quote.ReceiveAmount},
		},
	})
	if err != nil {
		return sandbank.Transfer{}, err
	}
	transfer, err = sandbank.WaitForState(ctx, c.GetTransfer, transfer,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Transfer{}, err
	}

	account, err := c.GetAccount(ctx, fiatAccount.GUID)
	if err != nil {
		return sandbank.Transfer{}, err
	}

	c.Logger().Info("usd off-ramp completed",
		"transfer_guid", transfer.GUID,
		"amount", transfer.Amount,
		"platform_available", account.PlatformAvailable,
	)
	return transfer, nil
}
