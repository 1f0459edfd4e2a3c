package resilience

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds the configuration for a retry policy.
//
// The configuration is copied at construction time and never mutated by the
// executor, so one config value can build many policies.
type RetryConfig struct {
	// Name identifies the policy in metrics and is passed to the Metrics sink.
	// Defaults to "retry".
	Name string

	// MaxAttempts is the total number of invocations allowed, including the
	// first one. Must be at least 1.
	MaxAttempts int

	// Backoff computes the wait before the next attempt from the 1-based
	// index of the attempt that just failed. Nil means no wait between
	// attempts.
	Backoff Backoff

	// OnRetry is invoked after every failed attempt that will be retried,
	// with the failure, the 1-based attempt index, and the computed wait.
	// It runs exactly once per scheduled retry and never for the final
	// failure, a first-attempt success, or a non-designated failure.
	// Optional.
	OnRetry func(err error, attempt int, wait time.Duration)

	// Handle reports whether a failure is designated — expected, transient,
	// and worth retrying. Failures outside the designated class propagate
	// immediately. Nil designates every failure.
	Handle func(err error) bool

	// Metrics receives execution metrics. Nil disables recording.
	Metrics Metrics
}

// Validate checks if the RetryConfig is valid.
func (c *RetryConfig) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MaxAttempts must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

// DefaultRetryConfig returns the linear-backoff retry profile used for the
// fact upstream: five attempts with waits growing by 300ms per failed attempt
// (300ms, 600ms, 900ms, 1200ms).
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Name:        "retry",
		MaxAttempts: 5,
		Backoff:     Linear(300 * time.Millisecond),
	}
}

// FixedDelayRetryConfig returns a constant-wait retry profile: three attempts
// separated by 500ms regardless of the attempt index.
func FixedDelayRetryConfig() RetryConfig {
	return RetryConfig{
		Name:        "retry",
		MaxAttempts: 3,
		Backoff:     Constant(500 * time.Millisecond),
	}
}

// FallbackConfig holds the configuration for a fallback policy.
type FallbackConfig[T any] struct {
	// Name identifies the policy in metrics. Defaults to "fallback".
	Name string

	// Recover produces the substitute result once the wrapped operation has
	// finished failing with a designated failure. It receives the original
	// failure and the execution's context, which it should honor if it
	// performs its own I/O. Required.
	Recover func(ctx context.Context, cause error) (T, error)

	// Handle reports whether a failure is designated and therefore
	// recoverable. Nil designates every failure.
	Handle func(err error) bool

	// Metrics receives execution metrics. Nil disables recording.
	Metrics Metrics
}

// Validate checks if the FallbackConfig is valid.
func (c *FallbackConfig[T]) Validate() error {
	if c.Recover == nil {
		return fmt.Errorf("Recover is required")
	}
	return nil
}
