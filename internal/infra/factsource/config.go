package factsource

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"fact-relay/pkg/config"
)

// Config holds the configuration for the fact upstream client.
//
// Reliability settings:
//   - Timeout: Bounds a single upstream round trip so a hung connection
//     surfaces as a designated transient failure instead of stalling the
//     attempt loop.
//
// Politeness settings:
//   - RequestsPerSecond / Burst: Token-bucket budget on outbound calls.
//     Retries multiply request volume, so the budget caps what the policy
//     engine can send at the upstream during an outage.
type Config struct {
	// BaseURL is the upstream origin, scheme and host only (e.g.
	// "https://catfact.ninja"). Must use http or https.
	BaseURL string

	// Path is the resource path appended to BaseURL. Must start with "/".
	// Default: "/fact"
	Path string

	// Timeout is the maximum duration for a single upstream request,
	// including connection setup and body read.
	// Default: 5s
	Timeout time.Duration

	// UserAgent is sent on every upstream request so the upstream can
	// attribute traffic.
	UserAgent string

	// RequestsPerSecond is the sustained outbound request rate.
	// Default: 5
	RequestsPerSecond float64

	// Burst is the number of requests allowed to fire back to back before
	// the rate takes over. Default: 2
	Burst int
}

// DefaultConfig returns the production default upstream configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://catfact.ninja",
		Path:              "/fact",
		Timeout:           5 * time.Second,
		UserAgent:         "fact-relay/1.0",
		RequestsPerSecond: 5,
		Burst:             2,
	}
}

// LoadConfigFromEnv builds a Config from environment variables, falling back
// to the defaults for anything unset:
//
//	FACT_UPSTREAM_BASE_URL
//	FACT_UPSTREAM_PATH
//	FACT_UPSTREAM_TIMEOUT
//	FACT_UPSTREAM_USER_AGENT
//	FACT_UPSTREAM_RPS
//	FACT_UPSTREAM_BURST
func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		BaseURL:           config.GetEnvString("FACT_UPSTREAM_BASE_URL", def.BaseURL),
		Path:              config.GetEnvString("FACT_UPSTREAM_PATH", def.Path),
		Timeout:           config.GetEnvDuration("FACT_UPSTREAM_TIMEOUT", def.Timeout),
		UserAgent:         config.GetEnvString("FACT_UPSTREAM_USER_AGENT", def.UserAgent),
		RequestsPerSecond: config.GetEnvFloat("FACT_UPSTREAM_RPS", def.RequestsPerSecond),
		Burst:             config.GetEnvInt("FACT_UPSTREAM_BURST", def.Burst),
	}
}

// Validate checks the configuration for values the client cannot operate
// with. It is called by NewClient, so a misconfigured upstream fails at
// startup rather than on the first request.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must have a host")
	}

	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must start with /, got %q", c.Path)
	}

	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %g", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}

	return nil
}
