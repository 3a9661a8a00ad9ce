package recipes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/sandbankhq/sandbank"
)

// usdcWithdrawalAmount is 25 USDC in base units (6 decimals).
const usdcWithdrawalAmount = 25_000_000

// CreateExternalWallet registers a USDC wallet for a customer and waits
// until it is usable. The sandbox accepts any plausible address.
func CreateExternalWallet(ctx context.Context, c *sandbank.Client, customer sandbank.Customer) (sandbank.ExternalWallet, error) {
	address, err := randomWalletAddress()
	if err != nil {
		return sandbank.ExternalWallet{}, err
	}

	wallet, err := c.CreateExternalWallet(ctx, sandbank.PostExternalWallet{
		Name:         "USDC wallet",
		Asset:        sandbank.AssetUSDC,
		Address:      address,
		CustomerGUID: customer.GUID,
	})
	if err != nil {
		return sandbank.ExternalWallet{}, err
	}
	wallet, err = sandbank.WaitForState(ctx, c.GetExternalWallet, wallet,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.ExternalWallet{}, err
	}

	c.Logger().Info("external wallet ready", "external_wallet_guid", wallet.GUID, "address", wallet.Address)
	return wallet, nil
}

// OffRampUSDC withdraws 25 USDC from a customer's trading account to their
// external wallet and logs the account's remaining balance.
func OffRampUSDC(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, tradingAccount sandbank.Account, wallet sandbank.ExternalWallet) (sandbank.Transfer, error) {
	destination := participantRef{typ: sandbank.ParticipantTypeCustomer, guid: customer.GUID}
	return cryptoWithdrawal(ctx, c, customer, tradingAccount, wallet, destination, "usdc off-ramp completed")
}

// CounterpartyPayment pays 25 USDC from a customer's trading account to a
// counterparty's external wallet and logs the account's remaining balance.
func CounterpartyPayment(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, tradingAccount sandbank.Account, counterparty sandbank.Counterparty, counterpartyWallet sandbank.ExternalWallet) (sandbank.Transfer, error) {
	destination := participantRef{typ: sandbank.ParticipantTypeCounterparty, guid: counterparty.GUID}
	return cryptoWithdrawal(ctx, c, customer, tradingAccount, counterpartyWallet, destination, "counterparty payment completed")
}

// participantRef identifies the receiving party of a crypto withdrawal.
type participantRef struct {
	typ  string
	guid string
}

func cryptoWithdrawal(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, tradingAccount sandbank.Account, wallet sandbank.ExternalWallet, destination participantRef, doneMsg string) (sandbank.Transfer, error) {
	quote, err := c.CreateQuote(ctx, sandbank.PostQuote{
		ProductType:   sandbank.QuoteProductTypeCryptoTransfer,
		CustomerGUID:  customer.GUID,
		Asset:         sandbank.AssetUSDC,
		Side:          sandbank.QuoteSideWithdrawal,
		ReceiveAmount: usdcWithdrawalAmount,
	})
	if err != nil {
		return sandbank.Transfer{}, err
	}

	transfer, err := c.CreateTransfer(ctx, sandbank.PostTransfer{
		QuoteGUID:          quote.GUID,
		TransferType:       sandbank.TransferTypeCrypto,
		ExternalWalletGUID: wallet.GUID,
		SourceParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: quote.DeliverAmount},
		},
		DestinationParticipants: []sandbank.TransferParticipant{
			{Type: destination.typ, GUID: destination.guid, Amount: quote.ReceiveAmount},
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

	account, err := c.GetAccount(ctx, tradingAccount.GUID)
	if err != nil {
		return sandbank.Transfer{}, err
	}

	c.Logger().Info(doneMsg,
		"transfer_guid", transfer.GUID,
		"amount", transfer.Amount,
		"platform_balance", account.PlatformBalance,
	)
	return transfer, nil
}

// randomWalletAddress generates a plausible crypto address for sandbox use.
func randomWalletAddress() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate wallet address: %w", err)
	}
	return "0x" + hex.EncodeToString(buf), nil
}
