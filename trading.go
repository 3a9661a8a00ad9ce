package sandbank

import (
	"context"
	"fmt"
)

// CreateQuote prices a funding, trading, book or crypto transfer operation.
// Quote creation is synchronous; the returned quote is ready to execute.
func (c *Client) CreateQuote(ctx context.Context, req PostQuote) (Quote, error) {
	c.logger.Debug("creating quote",
		"product_type", req.ProductType,
		"side", req.Side,
		"deliver_amount", req.DeliverAmount,
		"receive_amount", req.ReceiveAmount,
	)

	var quote Quote
	if err := c.api.Post(ctx, "/api/quotes", req, &quote); err != nil {
		return Quote{}, fmt.Errorf("failed to create quote: %w", err)
	}

	c.logger.Info("created quote", "quote_guid", quote.GUID, "product_type", quote.ProductType)
	return quote, nil
}

// CreateTrade executes a trading quote.
func (c *Client) CreateTrade(ctx context.Context, req PostTrade) (Trade, error) {
	c.logger.Debug("creating trade", "quote_guid", req.QuoteGUID)

	var trade Trade
	if err := c.api.Post(ctx, "/api/trades", req, &trade); err != nil {
		return Trade{}, fmt.Errorf("failed to create trade: %w", err)
	}

	c.logger.Info("created trade", "trade_guid", trade.GUID, "state", trade.State)
	return trade, nil
}

// GetTrade fetches a trade by GUID.
func (c *Client) GetTrade(ctx context.Context, guid string) (Trade, error) {
	var trade Trade
	if err := c.api.Get(ctx, "/api/trades/"+guid, &trade); err != nil {
		return Trade{}, err
	}
	return trade, nil
}
