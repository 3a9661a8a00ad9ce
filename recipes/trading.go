package recipes

import (
	"context"

	"github.com/sandbankhq/sandbank"
)

// tradeDeliverAmount is $75.00 in cents, delivered against a USDC buy.
const tradeDeliverAmount = 7_500

// TradeForUSDC buys USDC with $75.00 from a customer's fiat balance and
// waits for the trade to settle. Settling trades are treated as done since
// the funds are already committed.
func TradeForUSDC(ctx context.Context, c *sandbank.Client, customer sandbank.Customer, fiatAccount, tradingAccount sandbank.Account) (sandbank.Trade, error) {
	quote, err := c.CreateQuote(ctx, sandbank.PostQuote{
		ProductType:   sandbank.QuoteProductTypeTrading,
		CustomerGUID:  customer.GUID,
		Symbol:        sandbank.TradingPairUSDCUSD,
		Side:          sandbank.QuoteSideBuy,
		DeliverAmount: tradeDeliverAmount,
	})
	if err != nil {
		return sandbank.Trade{}, err
	}

	trade, err := c.CreateTrade(ctx, sandbank.PostTrade{QuoteGUID: quote.GUID})
	if err != nil {
		return sandbank.Trade{}, err
	}
	trade, err = sandbank.WaitForState(ctx, c.GetTrade, trade,
		[]string{sandbank.StateSettling, sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Trade{}, err
	}

	logger := c.Logger()
	logger.Info("trade settling",
		"trade_guid", trade.GUID,
		"deliver_amount", trade.DeliverAmount,
		"receive_amount", trade.ReceiveAmount,
	)
	for _, guid := range []string{fiatAccount.GUID, tradingAccount.GUID} {
		account, err := c.GetAccount(ctx, guid)
		if err != nil {
			return sandbank.Trade{}, err
		}
		logger.Info("account balance",
			"account_guid", account.GUID,
			"asset", account.Asset,
			"platform_balance", account.PlatformBalance,
		)
	}
	return trade, nil
}
