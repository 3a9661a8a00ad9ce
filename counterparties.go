package sandbank

import (
	"context"
	"fmt"
)

// CreateCounterparty registers a third party a customer transacts with.
// Counterparties follow the same unverified/verified lifecycle as
// customers.
func (c *Client) CreateCounterparty(ctx context.Context, req PostCounterparty) (Counterparty, error) {
	c.logger.Debug("creating counterparty", "type", req.Type, "customer_guid", req.CustomerGUID, "name", req.Name.Full)

	var counterparty Counterparty
	if err := c.api.Post(ctx, "/api/counterparties", req, &counterparty); err != nil {
		return Counterparty{}, fmt.Errorf("failed to create counterparty: %w", err)
	}

	c.logger.Info("created counterparty", "counterparty_guid", counterparty.GUID, "state", counterparty.State)
	return counterparty, nil
}

// GetCounterparty fetches a counterparty by GUID.
func (c *Client) GetCounterparty(ctx context.Context, guid string) (Counterparty, error) {
	var counterparty Counterparty
	if err := c.api.Get(ctx, "/api/counterparties/"+guid, &counterparty); err != nil {
		return Counterparty{}, err
	}
	return counterparty, nil
}
