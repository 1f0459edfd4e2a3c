package resilience

import (
	"context"
	"fmt"
)

// Fallback wraps an operation and substitutes a recovery result when the
// operation fails with a designated failure. Composed outside a Retry policy
// it acts as the terminal safety net: recovery runs only after the inner
// retries have been exhausted.
type Fallback[T any] struct {
	name      string
	recoverFn func(ctx context.Context, cause error) (T, error)
	handle    func(err error) bool
	metrics   Metrics
}

// NewFallback creates a fallback policy from cfg. The configuration is
// captured at construction and the returned policy is safe for concurrent
// use.
func NewFallback[T any](cfg FallbackConfig[T]) (*Fallback[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback config: %w", err)
	}

	f := &Fallback[T]{
		name:      cfg.Name,
		recoverFn: cfg.Recover,
		handle:    cfg.Handle,
		metrics:   cfg.Metrics,
	}
	if f.name == "" {
		f.name = "fallback"
	}
	if f.handle == nil {
		f.handle = handleAll
	}
	if f.metrics == nil {
		f.metrics = NewNoOpMetrics()
	}
	return f, nil
}

// Execute runs op once. On success the result passes through untouched. On a
// designated failure the recovery action runs exactly once with the original
// failure; its result replaces the failure, and its own error — if any —
// propagates uncaught. Non-designated failures propagate immediately without
// recovery.
func (f *Fallback[T]) Execute(ctx context.Context, op Operation[T]) (T, error) {
	result, err := op(ctx)
	if err == nil {
		return result, nil
	}

	if !f.handle(err) {
		var zero T
		return zero, err
	}

	substitute, rerr := f.recoverFn(ctx, err)
	f.metrics.RecordRecovery(f.name, rerr == nil)
	if rerr != nil {
		var zero T
		return zero, rerr
	}
	return substitute, nil
}
