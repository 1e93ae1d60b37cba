// Package usps talks to the USPS Addresses 3.0 API: an OAuth2
// client-credentials token exchange and a per-row address standardization
// call. It shapes inputs and outputs around the API; it never parses or
// corrects addresses itself.
package usps

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kestrelworks/uspsbatch/internal/telemetry"
)

// Production endpoints. The test environment swaps apis.usps.com for
// apis-tem.usps.com.
const (
	DefaultTokenURL    = "https://apis.usps.com/oauth2/v3/token"
	DefaultValidateURL = "https://apis.usps.com/addresses/v3/address"
)

// tokenScope is the only scope this system operates in.
const tokenScope = "addresses"

// DefaultTimeout bounds each outbound HTTP call so one unresponsive row
// cannot hang a batch.
const DefaultTimeout = 10 * time.Second

// Config contains shared configuration for the token provider and the
// validation client.
type Config struct {
	// TokenURL is the OAuth2 token endpoint. Defaults to DefaultTokenURL.
	TokenURL string

	// ValidateURL is the address standardization endpoint.
	// Defaults to DefaultValidateURL.
	ValidateURL string

	// Timeout bounds each HTTP call. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional; nil records nothing.
	Metrics *telemetry.Metrics
}

func (c Config) tokenURL() string {
	if c.TokenURL == "" {
		return DefaultTokenURL
	}
	return c.TokenURL
}

func (c Config) validateURL() string {
	if c.ValidateURL == "" {
		return DefaultValidateURL
	}
	return c.ValidateURL
}

func (c Config) httpClient() *http.Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
