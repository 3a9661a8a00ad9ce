package sandbank

import (
	"context"
	"fmt"
)

// CreateCustomer creates a customer. New customers start in "storing" and
// settle in "unverified" until an identity verification passes.
func (c *Client) CreateCustomer(ctx context.Context, req PostCustomer) (Customer, error) {
	c.logger.Debug("creating customer", "type", req.Type)

	var customer Customer
	if err := c.api.Post(ctx, "/api/customers", req, &customer); err != nil {
		return Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	c.logger.Info("created customer", "customer_guid", customer.GUID, "state", customer.State)
	return customer, nil
}

// GetCustomer fetches a customer by GUID.
func (c *Client) GetCustomer(ctx context.Context, guid string) (Customer, error) {
	var customer Customer
	if err := c.api.Get(ctx, "/api/customers/"+guid, &customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}
