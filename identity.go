package sandbank

import (
	"context"
	"fmt"

	"github.com/sandbankhq/sandbank/internal/auth"
)

// CreateIdentityVerification starts an identity verification for a customer,
// counterparty, or external bank account. Verifications settle in
// "completed" with an outcome of "passed" or "failed".
func (c *Client) CreateIdentityVerification(ctx context.Context, req PostIdentityVerification) (IdentityVerification, error) {
	c.logger.Debug("creating identity verification",
		"type", req.Type,
		"method", req.Method,
		"customer_guid", req.CustomerGUID,
		"counterparty_guid", req.CounterpartyGUID,
	)

	var verification IdentityVerification
	if err := c.api.Post(ctx, "/api/identity_verifications", req, &verification); err != nil {
		return IdentityVerification{}, fmt.Errorf("failed to create identity verification: %w", err)
	}

	c.logger.Info("created identity verification", "identity_verification_guid", verification.GUID, "state", verification.State)
	return verification, nil
}

// CreateAttestedIdentityVerification runs a KYC verification whose evidence
// is a bank-signed RS512 attestation rather than an interactive flow. The
// signing key must be a PEM-encoded RSA private key registered with the
// platform under verificationKeyGUID.
func (c *Client) CreateAttestedIdentityVerification(ctx context.Context, signingKeyPEM []byte, verificationKeyGUID, bankGUID, customerGUID string) (IdentityVerification, error) {
	key, err := auth.ParseSigningKey(signingKeyPEM)
	if err != nil {
		return IdentityVerification{}, err
	}
	token, err := auth.SignAttestation(key, c.APIURL(), verificationKeyGUID, bankGUID, customerGUID)
	if err != nil {
		return IdentityVerification{}, err
	}

	return c.CreateIdentityVerification(ctx, PostIdentityVerification{
		Type:         VerificationTypeKYC,
		Method:       VerificationMethodAttested,
		CustomerGUID: customerGUID,
		Token:        token,
	})
}

// GetIdentityVerification fetches an identity verification by GUID.
func (c *Client) GetIdentityVerification(ctx context.Context, guid string) (IdentityVerification, error) {
	var verification IdentityVerification
	if err := c.api.Get(ctx, "/api/identity_verifications/"+guid, &verification); err != nil {
		return IdentityVerification{}, err
	}
	return verification, nil
}
