// config.go
// ---------
// Client configuration. The API origin is taken from the
// TRADE_API_BASE_URL environment variable unless set explicitly; the
// remaining knobs control the fixed request timeout and the opt-in
// retry behavior of the executor.
package tradebridge

import (
	"os"
	"time"
)

// EnvBaseURL is the environment variable naming the API origin.
const EnvBaseURL = "TRADE_API_BASE_URL"

const (
	// DefaultTimeout is the fixed overall timeout applied to every
	// request, including the token-refresh call.
	DefaultTimeout = 30 * time.Second

	// apiPrefix is prepended to every endpoint path.
	apiPrefix = "/api/v1"
)

// Config customizes a Client. The zero value is usable as long as
// TRADE_API_BASE_URL is set in the environment.
type Config struct {
	// BaseURL is the API origin, e.g. "https://trade.example.com".
	// Falls back to the TRADE_API_BASE_URL environment variable when
	// empty.
	BaseURL string

	// Timeout bounds each request end to end. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts for transport
	// errors, 5xx and 429 responses. Zero disables retries, which is
	// the default: errors propagate to the caller unchanged.
	MaxRetries int

	// BaseBackoff is the initial backoff between retries. Zero means
	// one second.
	BaseBackoff time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.BaseBackoff == 0 {
		c.BaseBackoff = time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "trade-bridge-go"
	}
	return c
}
