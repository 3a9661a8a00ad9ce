package sandbank

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sandbankhq/sandbank/internal/api"
	"github.com/sandbankhq/sandbank/internal/auth"
)

// Client is a platform API client scoped to a single bank.
//
// A Client is created with [New] and, unless a pre-issued token was
// supplied via [WithToken], must be authenticated with
// [Client.Authenticate] before making platform calls:
//
//	client, err := sandbank.New("sandbox.sandbank.dev",
//	    sandbank.WithClientCredentials(id, secret),
//	)
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	if err := client.Authenticate(ctx); err != nil {
//	    slog.Error("failed to authenticate", "error", err)
//	    os.Exit(1)
//	}
//
// All methods are safe for concurrent use.
type Client struct {
	api          *api.Client
	httpClient   *http.Client
	logger       *slog.Logger
	tokenURL     string
	creds        auth.Credentials
	waitAttempts int
	waitInterval time.Duration
}

// New creates a [Client] for the environment at base, a bare host such as
// "sandbox.sandbank.dev". The platform API URL and the OAuth token URL are
// derived from it:
//
//	platform:  <scheme>://bank.<base>
//	token:     <scheme>://id.<base>/oauth/token
//
// Either derivation can be overridden with [WithAPIURL] and [WithTokenURL].
// Other options have sensible defaults:
//   - Scheme: https
//   - Wait attempts: 30
//   - Wait interval: 1 second
//
// Returns an error if base is empty or any option is invalid.
func New(base string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		urlScheme:    "https",
		waitAttempts: DefaultWaitAttempts,
		waitInterval: DefaultWaitInterval,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	apiURL := cfg.apiURL
	tokenURL := cfg.tokenURL
	if apiURL == "" || tokenURL == "" {
		if base == "" {
			return nil, fmt.Errorf("environment base is required")
		}
		if apiURL == "" {
			apiURL = fmt.Sprintf("%s://bank.%s", cfg.urlScheme, base)
		}
		if tokenURL == "" {
			tokenURL = fmt.Sprintf("%s://id.%s/oauth/token", cfg.urlScheme, base)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	apiClient := api.NewClient(apiURL, cfg.httpClient)
	if cfg.token != "" {
		apiClient.SetToken(cfg.token)
	}

	return &Client{
		api:          apiClient,
		httpClient:   cfg.httpClient,
		logger:       logger,
		tokenURL:     tokenURL,
		creds:        auth.Credentials{ClientID: cfg.clientID, ClientSecret: cfg.clientSecret},
		waitAttempts: cfg.waitAttempts,
		waitInterval: cfg.waitInterval,
	}, nil
}

// Authenticate obtains a bearer token via the OAuth2 client-credentials
// grant and applies it to all subsequent platform requests. Credentials
// must have been provided with [WithClientCredentials].
func (c *Client) Authenticate(ctx context.Context) error {
	c.logger.Debug("requesting access token", "token_url", c.tokenURL)

	token, err := auth.Token(ctx, c.httpClient, c.tokenURL, c.creds, auth.Scopes)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	c.api.SetToken(token)
	c.logger.Info("authenticated")
	return nil
}

// APIURL returns the platform API base URL the client targets.
func (c *Client) APIURL() string {
	return c.api.BaseURL()
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// WaitOptions returns the client's configured polling budget and interval
// as options for [WaitForState].
func (c *Client) WaitOptions() []WaitOption {
	return []WaitOption{
		WaitAttempts(c.waitAttempts),
		WaitInterval(c.waitInterval),
	}
}

// Close releases idle connections held by the client's transport.
func (c *Client) Close() {
	c.api.Close()
}
