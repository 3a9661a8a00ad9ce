// Package plaid drives the Plaid sandbox environment to mint public
// tokens for test financial institutions, standing in for the interactive
// Plaid Link flow a real integration would run in the browser.
package plaid

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// SandboxURL is the Plaid sandbox environment host.
const SandboxURL = "https://sandbox.plaid.com"

// testInstitutionID is Plaid's well-known sandbox institution
// (First Platypus Bank).
const testInstitutionID = "ins_109508"

// Client talks to the Plaid sandbox API.
type Client struct {
	ClientID string
	Secret   string

	// BaseURL overrides the sandbox host. Defaults to [SandboxURL].
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// CreateSandboxPublicToken creates a public token for the sandbox test
// institution with the auth and identity products enabled. The returned
// token is what Plaid Link would hand to an onSuccess callback.
func (c *Client) CreateSandboxPublicToken(ctx context.Context) (string, error) {
	if c.ClientID == "" || c.Secret == "" {
		return "", errors.New("plaid client id and secret are required")
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = SandboxURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	body, err := json.Marshal(map[string]any{
		"client_id":        c.ClientID,
		"secret":           c.Secret,
		"institution_id":   testInstitutionID,
		"initial_products": []string{"auth", "identity"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode public token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(baseURL, "/")+"/sandbox/public_token/create", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create public token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("public token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read public token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("plaid sandbox returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var tokenResp struct {
		PublicToken string `json:"public_token"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode public token response: %w", err)
	}
	if tokenResp.PublicToken == "" {
		return "", errors.New("plaid sandbox returned no public_token")
	}
	return tokenResp.PublicToken, nil
}

// OnSuccess mimics the result of a completed Plaid Link session: a public
// token paired with the selected account id. The sandbox does not surface
// account ids for minted tokens, so a random one is generated.
func (c *Client) OnSuccess(ctx context.Context) (publicToken, accountID string, err error) {
	publicToken, err = c.CreateSandboxPublicToken(ctx)
	if err != nil {
		return "", "", err
	}
	accountID, err = randomHex(16)
	if err != nil {
		return "", "", err
	}
	return publicToken, accountID, nil
}

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
