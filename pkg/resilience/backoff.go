package resilience

import (
	"math"
	"math/rand"
	"time"
)

// Backoff maps a 1-based attempt index (the attempt that just failed) to the
// wait duration inserted before the next attempt. Calculators returned by
// this package are pure: same index, same duration, no side effects, never
// negative. Attempt indices below 1 are treated as 1.
type Backoff func(attempt int) time.Duration

// Linear returns a calculator that waits attempt*unit: the wait grows by one
// unit after every failed attempt (300ms, 600ms, 900ms, ... for a 300ms unit).
func Linear(unit time.Duration) Backoff {
	if unit < 0 {
		unit = 0
	}
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		d := time.Duration(attempt) * unit
		if d < 0 {
			// Overflow guard for absurd attempt counts.
			return 0
		}
		return d
	}
}

// Constant returns a calculator that waits the same duration regardless of
// the attempt index.
func Constant(delay time.Duration) Backoff {
	if delay < 0 {
		delay = 0
	}
	return func(int) time.Duration {
		return delay
	}
}

// Exponential returns a calculator that waits initial*multiplier^(attempt-1),
// capped at max. A multiplier below 1 is raised to 1; a non-positive max
// means no ceiling.
func Exponential(initial time.Duration, multiplier float64, max time.Duration) Backoff {
	if initial < 0 {
		initial = 0
	}
	if multiplier < 1 {
		multiplier = 1
	}
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		f := float64(initial) * math.Pow(multiplier, float64(attempt-1))
		if f > math.MaxInt64 {
			f = math.MaxInt64
		}
		d := time.Duration(f)
		if max > 0 && d > max {
			d = max
		}
		return d
	}
}

// WithJitter decorates a calculator with up to fraction (0.0 to 1.0) of
// random additional wait to prevent thundering herd. The result is no longer
// deterministic; do not use it where a reproducible schedule matters.
func WithJitter(b Backoff, fraction float64) Backoff {
	if fraction <= 0 {
		return b
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	return func(attempt int) time.Duration {
		d := b(attempt)
		// #nosec G404 -- Using math/rand is acceptable for jitter calculation.
		// Cryptographic randomness is not required for retry backoff jitter.
		jitter := time.Duration(rand.Float64() * float64(d) * fraction)
		return d + jitter
	}
}
