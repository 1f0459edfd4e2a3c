// Package config loads service configuration files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"fact-relay/pkg/resilience"
)

// Backoff kinds accepted by the resilience profile.
const (
	BackoffLinear      = "linear"
	BackoffConstant    = "constant"
	BackoffExponential = "exponential"
)

// Duration wraps time.Duration so profiles can write human-readable values
// like "300ms" or "2s" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a duration from a YAML scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string like \"300ms\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ResilienceConfig is the YAML profile controlling the retry policy, the
// fallback stand-in, and the fault injector. The engine itself is configured
// from this profile at service construction; the profile never reaches the
// engine directly.
type ResilienceConfig struct {
	Retry          RetryProfile          `yaml:"retry"`
	Fallback       FallbackProfile       `yaml:"fallback"`
	FaultInjection FaultInjectionProfile `yaml:"fault_injection"`
}

// RetryProfile configures the retry policy.
type RetryProfile struct {
	// MaxAttempts is the total number of upstream invocations allowed,
	// including the first one.
	MaxAttempts int `yaml:"max_attempts"`

	// Backoff selects and parameterizes the wait calculator.
	Backoff BackoffProfile `yaml:"backoff"`
}

// BackoffProfile selects a backoff calculator. Exactly the fields for the
// chosen kind are read; the rest are ignored.
type BackoffProfile struct {
	// Kind is one of "linear", "constant", or "exponential".
	Kind string `yaml:"kind"`

	// Unit is the linear growth step (wait = attempt * unit).
	Unit Duration `yaml:"unit"`

	// Delay is the constant wait.
	Delay Duration `yaml:"delay"`

	// Initial, Multiplier and Max parameterize exponential backoff.
	Initial    Duration `yaml:"initial"`
	Multiplier float64  `yaml:"multiplier"`
	Max        Duration `yaml:"max"`

	// JitterFraction adds up to the given fraction of random extra wait.
	// Only valid with exponential backoff; the reference profiles stay
	// deterministic.
	JitterFraction float64 `yaml:"jitter_fraction"`
}

// FallbackProfile configures the terminal recovery action.
type FallbackProfile struct {
	// StandInText is the degraded fact text served once retries are
	// exhausted. Empty is allowed and serves an empty fact.
	StandInText string `yaml:"stand_in_text"`
}

// FaultInjectionProfile configures the synthetic failure source placed in
// front of the real upstream call.
type FaultInjectionProfile struct {
	// Enabled turns injection on. Keep off in production.
	Enabled bool `yaml:"enabled"`

	// Probability is the chance in [0,1] that a call fails synthetically.
	Probability float64 `yaml:"probability"`

	// Seed seeds the injector's random source. Zero means derive a seed
	// from the clock at startup.
	Seed int64 `yaml:"seed"`
}

// DefaultResilienceConfig returns the reference profile: five attempts with
// linear 300ms backoff, an empty stand-in fact, and fault injection off.
func DefaultResilienceConfig() *ResilienceConfig {
	return &ResilienceConfig{
		Retry: RetryProfile{
			MaxAttempts: 5,
			Backoff: BackoffProfile{
				Kind: BackoffLinear,
				Unit: Duration(300 * time.Millisecond),
			},
		},
		Fallback: FallbackProfile{
			StandInText: "",
		},
		FaultInjection: FaultInjectionProfile{
			Enabled:     false,
			Probability: 0.5,
		},
	}
}

// LoadResilienceConfig loads the resilience profile from the YAML file at
// path. An empty path returns the default profile, so running without a
// config file is supported.
// The path parameter is expected to come from a trusted source (environment
// variable or hardcoded default).
func LoadResilienceConfig(path string) (*ResilienceConfig, error) {
	if path == "" {
		return DefaultResilienceConfig(), nil
	}

	// #nosec G304 -- path is provided by trusted source (env var or default), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultResilienceConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the profile for values the service cannot start with.
func (c *ResilienceConfig) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}

	if err := c.Retry.Backoff.validate(); err != nil {
		return fmt.Errorf("retry.backoff: %w", err)
	}

	if c.FaultInjection.Probability < 0 || c.FaultInjection.Probability > 1 {
		return fmt.Errorf("fault_injection.probability must be within [0,1], got %g",
			c.FaultInjection.Probability)
	}

	return nil
}

func (b *BackoffProfile) validate() error {
	switch b.Kind {
	case BackoffLinear:
		if b.Unit <= 0 {
			return fmt.Errorf("linear backoff requires a positive unit")
		}
	case BackoffConstant:
		if b.Delay < 0 {
			return fmt.Errorf("constant backoff delay must not be negative")
		}
	case BackoffExponential:
		if b.Initial <= 0 {
			return fmt.Errorf("exponential backoff requires a positive initial delay")
		}
		if b.Multiplier < 1 {
			return fmt.Errorf("exponential backoff multiplier must be at least 1")
		}
	default:
		return fmt.Errorf("unknown backoff kind %q", b.Kind)
	}

	if b.JitterFraction != 0 {
		if b.Kind != BackoffExponential {
			return fmt.Errorf("jitter_fraction is only valid with exponential backoff")
		}
		if b.JitterFraction < 0 || b.JitterFraction > 1 {
			return fmt.Errorf("jitter_fraction must be within [0,1], got %g", b.JitterFraction)
		}
	}

	return nil
}

// Build returns the backoff calculator the profile describes. Call Validate
// first; Build assumes a valid profile.
func (b *BackoffProfile) Build() resilience.Backoff {
	switch b.Kind {
	case BackoffConstant:
		return resilience.Constant(b.Delay.Std())
	case BackoffExponential:
		backoff := resilience.Exponential(b.Initial.Std(), b.Multiplier, b.Max.Std())
		if b.JitterFraction > 0 {
			backoff = resilience.WithJitter(backoff, b.JitterFraction)
		}
		return backoff
	default:
		return resilience.Linear(b.Unit.Std())
	}
}
