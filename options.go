package sandbank

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	urlScheme    string
	apiURL       string
	tokenURL     string
	httpClient   *http.Client
	logger       *slog.Logger
	token        string
	clientID     string
	clientSecret string
	waitAttempts int
	waitInterval time.Duration
}

// Option is a function that configures a [Client] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*clientConfig) error

// WithURLScheme sets the scheme used when deriving the platform and token
// URLs from the environment base. Defaults to "https".
//
// Returns an error if the scheme is neither "http" nor "https".
func WithURLScheme(scheme string) Option {
	return func(cfg *clientConfig) error {
		if scheme != "http" && scheme != "https" {
			return errors.New("url scheme must be http or https")
		}
		cfg.urlScheme = scheme
		return nil
	}
}

// WithAPIURL overrides the derived platform API URL.
//
// By default the platform URL is derived from the environment base passed
// to [New] as <scheme>://bank.<base>. Use this to point the client at a
// specific host, for example a local test server.
func WithAPIURL(u string) Option {
	return func(cfg *clientConfig) error {
		if u == "" {
			return errors.New("api url cannot be empty")
		}
		cfg.apiURL = u
		return nil
	}
}

// WithTokenURL overrides the derived OAuth token URL.
//
// By default the token URL is derived from the environment base passed to
// [New] as <scheme>://id.<base>/oauth/token.
func WithTokenURL(u string) Option {
	return func(cfg *clientConfig) error {
		if u == "" {
			return errors.New("token url cannot be empty")
		}
		cfg.tokenURL = u
		return nil
	}
}

// WithHTTPClient sets a custom [http.Client] for all platform and token
// requests. If not specified, a pooled client with sensible timeouts is
// used.
//
// Returns an error if the client is nil.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *clientConfig) error {
		if httpClient == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.httpClient = httpClient
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Client.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithToken sets a pre-issued bearer token, bypassing the OAuth
// client-credentials grant. Useful for tests and for callers that manage
// token issuance themselves.
func WithToken(token string) Option {
	return func(cfg *clientConfig) error {
		if token == "" {
			return errors.New("token cannot be empty")
		}
		cfg.token = token
		return nil
	}
}

// WithClientCredentials sets the OAuth2 client id and secret used by
// [Client.Authenticate] to obtain a bearer token.
func WithClientCredentials(clientID, clientSecret string) Option {
	return func(cfg *clientConfig) error {
		if clientID == "" || clientSecret == "" {
			return errors.New("client id and client secret are required")
		}
		cfg.clientID = clientID
		cfg.clientSecret = clientSecret
		return nil
	}
}

// WithWaitAttempts sets the default fetch budget applied when the client's
// Wait* helpers poll a resource. Defaults to [DefaultWaitAttempts].
//
// Returns an error if the value is zero or negative.
func WithWaitAttempts(n int) Option {
	return func(cfg *clientConfig) error {
		if n <= 0 {
			return errors.New("wait attempts must be positive")
		}
		cfg.waitAttempts = n
		return nil
	}
}

// WithWaitInterval sets the default pause between polling fetches used by
// the client's Wait* helpers. Defaults to [DefaultWaitInterval].
//
// Returns an error if the duration is zero or negative.
func WithWaitInterval(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("wait interval must be positive")
		}
		cfg.waitInterval = d
		return nil
	}
}
