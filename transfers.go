package sandbank

import (
	"context"
	"fmt"
)

// CreateTransfer executes a transfer against a quote.
func (c *Client) CreateTransfer(ctx context.Context, req PostTransfer) (Transfer, error) {
	c.logger.Debug("creating transfer", "quote_guid", req.QuoteGUID, "transfer_type", req.TransferType)

	var transfer Transfer
	if err := c.api.Post(ctx, "/api/transfers", req, &transfer); err != nil {
		return Transfer{}, fmt.Errorf("failed to create transfer: %w", err)
	}

	c.logger.Info("created transfer", "transfer_guid", transfer.GUID, "state", transfer.State)
	return transfer, nil
}

// GetTransfer fetches a transfer by GUID.
func (c *Client) GetTransfer(ctx context.Context, guid string) (Transfer, error) {
	var transfer Transfer
	if err := c.api.Get(ctx, "/api/transfers/"+guid, &transfer); err != nil {
		return Transfer{}, err
	}
	return transfer, nil
}
