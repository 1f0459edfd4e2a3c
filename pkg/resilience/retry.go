package resilience

import (
	"context"
	"fmt"
	"time"
)

// Retry executes operations with bounded re-invocation on designated
// failures, waiting per the configured backoff calculator between attempts.
type Retry[T any] struct {
	name        string
	maxAttempts int
	backoff     Backoff
	onRetry     func(err error, attempt int, wait time.Duration)
	handle      func(err error) bool
	metrics     Metrics

	// sleep waits for the backoff duration; swapped in tests to avoid real
	// waits while keeping the computed schedule observable.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetry creates a retry policy from cfg. The configuration is captured at
// construction and the returned policy is safe for concurrent use.
func NewRetry[T any](cfg RetryConfig) (*Retry[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}

	r := &Retry[T]{
		name:        cfg.Name,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		onRetry:     cfg.OnRetry,
		handle:      cfg.Handle,
		metrics:     cfg.Metrics,
		sleep:       sleepContext,
	}
	if r.name == "" {
		r.name = "retry"
	}
	if r.backoff == nil {
		r.backoff = Constant(0)
	}
	if r.handle == nil {
		r.handle = handleAll
	}
	if r.metrics == nil {
		r.metrics = NewNoOpMetrics()
	}
	return r, nil
}

// Execute runs op up to MaxAttempts times. It returns op's success value as
// soon as one attempt succeeds, propagates a non-designated failure
// immediately, and returns the last designated failure unmodified once
// attempts are exhausted so outer policies and callers see the original
// error.
func (r *Retry[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		r.metrics.RecordAttempt(r.name)

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if !r.handle(err) {
			return zero, err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		wait := r.backoff(attempt)
		if wait < 0 {
			// Calculators from this package never go negative; guard against
			// caller-supplied ones that do.
			wait = 0
		}

		r.notifyRetry(err, attempt, wait)
		r.metrics.RecordRetry(r.name, wait)

		if serr := r.sleep(ctx, wait); serr != nil {
			return zero, fmt.Errorf("retry wait aborted: %w", serr)
		}
	}

	r.metrics.RecordExhaustion(r.name)
	return zero, lastErr
}

// notifyRetry invokes the observer, shielding the attempt loop from a
// panicking callback.
func (r *Retry[T]) notifyRetry(err error, attempt int, wait time.Duration) {
	if r.onRetry == nil {
		return
	}
	defer func() {
		// The observer is advisory; a panic inside it must not abort the
		// attempt loop.
		_ = recover()
	}()
	r.onRetry(err, attempt, wait)
}

// handleAll is the default designated-failure predicate.
func handleAll(error) bool {
	return true
}

// sleepContext waits for d without blocking the thread, aborting early when
// ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
