package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Scopes is the full scope list the demo flows require. Production
// integrations should request only the scopes they use.
var Scopes = []string{
	"accounts:read", "accounts:execute",
	"banks:read", "banks:write",
	"customers:read", "customers:write", "customers:execute",
	"prices:read",
	"quotes:execute",
	"trades:read", "trades:execute",
	"transfers:read", "transfers:execute",
	"external_bank_accounts:read", "external_bank_accounts:write", "external_bank_accounts:execute",
	"external_wallets:read", "external_wallets:execute",
	"workflows:read", "workflows:execute",
	"counterparties:read", "counterparties:write", "counterparties:execute",
	"identity_verifications:read", "identity_verifications:write", "identity_verifications:execute",
	"deposit_addresses:read", "deposit_addresses:execute",
	"deposit_bank_accounts:read", "deposit_bank_accounts:execute",
}

// Credentials are an OAuth2 client id/secret pair issued by the platform.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Token performs an OAuth2 client-credentials grant against tokenURL and
// returns the access token. The requested scopes are joined with spaces as
// a single scope string.
func Token(ctx context.Context, httpClient *http.Client, tokenURL string, creds Credentials, scopes []string) (string, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return "", errors.New("client id and client secret are required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"scope":         strings.Join(scopes, " "),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token response contained no access_token")
	}
	return tokenResp.AccessToken, nil
}
