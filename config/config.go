// Package config provides YAML and environment configuration for the
// sandbank CLI.
//
// This package enables running the demo flows as a standalone binary with
// a configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	base_url: sandbox.sandbank.dev
//	client_id: ${APPLICATION_CLIENT_ID}
//	client_secret: ${APPLICATION_CLIENT_SECRET}
//	bank_guid: ${BANK_GUID}
//	wait_attempts: 30
//
//	plaid:
//	  client_id: ${PLAID_CLIENT_ID}
//	  sandbox_secret: ${PLAID_SANDBOX_SECRET}
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultURLScheme    = "https"
	defaultWaitAttempts = 30
)

// Config is the root configuration structure for the sandbank CLI.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML, or [FromEnv] to
// build one from environment variables alone.
type Config struct {
	// BaseURL is the bare environment host, e.g. "sandbox.sandbank.dev".
	// The platform and token URLs are derived from it.
	BaseURL string `yaml:"base_url"`

	// URLScheme is the scheme for derived URLs. Defaults to "https".
	URLScheme string `yaml:"url_scheme"`

	// ClientID and ClientSecret are the OAuth2 application credentials.
	// Values support environment variable substitution: ${VAR} or ${VAR:-default}
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// BankGUID identifies the bank all flows run against.
	BankGUID string `yaml:"bank_guid"`

	// WaitAttempts is the fetch budget for each state wait. Defaults to 30.
	WaitAttempts int `yaml:"wait_attempts"`

	// AttestationSigningKey is a PEM-encoded RSA private key used to sign
	// identity attestations. Optional; only attested flows need it.
	AttestationSigningKey string `yaml:"attestation_signing_key"`

	// VerificationKeyGUID is the platform-registered verification key the
	// attestation signing key corresponds to.
	VerificationKeyGUID string `yaml:"verification_key_guid"`

	// Plaid holds the Plaid sandbox credentials for bank account linking.
	Plaid PlaidConfig `yaml:"plaid"`
}

// PlaidConfig holds Plaid sandbox credentials.
type PlaidConfig struct {
	ClientID      string `yaml:"client_id"`
	SandboxSecret string `yaml:"sandbox_secret"`
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in all string fields. Defaults are
// applied for URLScheme (https) and WaitAttempts (30).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv builds a Config directly from environment variables, matching the
// variables the original container deployment used: BASE_URL, URL_SCHEME,
// APPLICATION_CLIENT_ID, APPLICATION_CLIENT_SECRET, BANK_GUID, TIMEOUT,
// ATTESTATION_SIGNING_KEY, VERIFICATION_KEY_GUID, PLAID_CLIENT_ID, and
// PLAID_SANDBOX_SECRET.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:               os.Getenv("BASE_URL"),
		URLScheme:             os.Getenv("URL_SCHEME"),
		ClientID:              os.Getenv("APPLICATION_CLIENT_ID"),
		ClientSecret:          os.Getenv("APPLICATION_CLIENT_SECRET"),
		BankGUID:              os.Getenv("BANK_GUID"),
		AttestationSigningKey: os.Getenv("ATTESTATION_SIGNING_KEY"),
		VerificationKeyGUID:   os.Getenv("VERIFICATION_KEY_GUID"),
		Plaid: PlaidConfig{
			ClientID:      os.Getenv("PLAID_CLIENT_ID"),
			SandboxSecret: os.Getenv("PLAID_SANDBOX_SECRET"),
		},
	}

	if timeout := os.Getenv("TIMEOUT"); timeout != "" {
		n, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("TIMEOUT must be an integer, got %q", timeout)
		}
		cfg.WaitAttempts = n
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandAndValidate expands environment variables, applies defaults, and
// validates the config.
func (c *Config) expandAndValidate() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"base_url", &c.BaseURL},
		{"url_scheme", &c.URLScheme},
		{"client_id", &c.ClientID},
		{"client_secret", &c.ClientSecret},
		{"bank_guid", &c.BankGUID},
		{"attestation_signing_key", &c.AttestationSigningKey},
		{"verification_key_guid", &c.VerificationKeyGUID},
		{"plaid.client_id", &c.Plaid.ClientID},
		{"plaid.sandbox_secret", &c.Plaid.SandboxSecret},
	}
	for _, f := range fields {
		expanded, err := expandEnvVars(*f.value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.value = expanded
	}

	if c.URLScheme == "" {
		c.URLScheme = defaultURLScheme
	}
	if c.WaitAttempts == 0 {
		c.WaitAttempts = defaultWaitAttempts
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.URLScheme != "http" && c.URLScheme != "https" {
		return fmt.Errorf("url_scheme must be http or https, got %q", c.URLScheme)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("client_id and client_secret are required")
	}
	if c.BankGUID == "" {
		return fmt.Errorf("bank_guid is required")
	}
	if c.WaitAttempts < 0 {
		return fmt.Errorf("wait_attempts must be positive, got %d", c.WaitAttempts)
	}

	return nil
}
