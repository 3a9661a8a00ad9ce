package recipes

import (
	"context"

	"github.com/sandbankhq/sandbank"
)

// p2pAmount is $5.00 in cents.
const p2pAmount = 500

// P2PTransfer moves $5.00 between two customers' fiat accounts as a book
// transfer and logs both resulting balances.
func P2PTransfer(ctx context.Context, c *sandbank.Client, sender sandbank.Customer, senderAccount sandbank.Account, receiver sandbank.Customer, receiverAccount sandbank.Account) (sandbank.Transfer, error) {
	quote, err := c.CreateQuote(ctx, sandbank.PostQuote{
		ProductType:   sandbank.QuoteProductTypeBook,
		CustomerGUID:  sender.GUID,
		Asset:         sandbank.AssetUSD,
		Side:          sandbank.QuoteSideWithdrawal,
		ReceiveAmount: p2pAmount,
	})
	if err != nil {
		return sandbank.Transfer{}, err
	}

	transfer, err := c.CreateTransfer(ctx, sandbank.PostTransfer{
		QuoteGUID:              quote.GUID,
		TransferType:           sandbank.TransferTypeBook,
		SourceAccountGUID:      senderAccount.GUID,
		DestinationAccountGUID: receiverAccount.GUID,
		SourceParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: sender.GUID, Amount: quote.DeliverAmount},
		},
		DestinationParticipants: []sandbank.TransferParticipant{
			{Type: sandbank.ParticipantTypeCustomer, GUID: receiver.GUID, Amount: quote.ReceiveAmount},
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

	logger := c.Logger()
	logger.Info("p2p transfer completed", "transfer_guid", transfer.GUID, "amount", transfer.Amount)
	for _, guid := range []string{senderAccount.GUID, receiverAccount.GUID} {
		account, err := c.GetAccount(ctx, guid)
		if err != nil {
			return sandbank.Transfer{}, err
		}
		logger.Info("account balance",
			"account_guid", account.GUID,
			"platform_balance", account.PlatformBalance,
		)
	}
	return transfer, nil
}
