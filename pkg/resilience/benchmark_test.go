package resilience

import (
	"context"
	"testing"
	"time"
)

// BenchmarkRetry_SuccessPath benchmarks the happy path through the retry
// executor: no failures, no waits, no observer.
//
// This is the per-request overhead every successful upstream call pays.
func BenchmarkRetry_SuccessPath(b *testing.B) {
	retry, err := NewRetry[string](RetryConfig{
		MaxAttempts: 5,
		Backoff:     Linear(300 * time.Millisecond),
		Handle:      isTransient,
	})
	if err != nil {
		b.Fatalf("NewRetry() error = %v", err)
	}
	ctx := context.Background()
	op := func(context.Context) (string, error) { return "ok", nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = retry.Execute(ctx, op)
	}
}

// BenchmarkWrap_SuccessPath benchmarks the full composed stack (fallback
// around retry) on the happy path.
func BenchmarkWrap_SuccessPath(b *testing.B) {
	retry, err := NewRetry[string](RetryConfig{
		MaxAttempts: 5,
		Backoff:     Linear(300 * time.Millisecond),
		Handle:      isTransient,
	})
	if err != nil {
		b.Fatalf("NewRetry() error = %v", err)
	}
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) { return "", nil },
		Handle:  isTransient,
	})
	if err != nil {
		b.Fatalf("NewFallback() error = %v", err)
	}
	policy := Wrap[string](fallback, retry)

	ctx := context.Background()
	op := func(context.Context) (string, error) { return "ok", nil }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = policy.Execute(ctx, op)
	}
}

// BenchmarkWrap_ExhaustionPath benchmarks the worst case: every attempt fails
// designated, retries exhaust with zero backoff, recovery runs.
func BenchmarkWrap_ExhaustionPath(b *testing.B) {
	retry, err := NewRetry[string](RetryConfig{
		MaxAttempts: 5,
		Backoff:     Constant(0),
		Handle:      isTransient,
	})
	if err != nil {
		b.Fatalf("NewRetry() error = %v", err)
	}
	fallback, err := NewFallback[string](FallbackConfig[string]{
		Recover: func(context.Context, error) (string, error) { return "", nil },
		Handle:  isTransient,
	})
	if err != nil {
		b.Fatalf("NewFallback() error = %v", err)
	}
	policy := Wrap[string](fallback, retry)

	ctx := context.Background()
	op := func(context.Context) (string, error) { return "", errTransient }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = policy.Execute(ctx, op)
	}
}

// BenchmarkLinear benchmarks the linear backoff calculator.
func BenchmarkLinear(b *testing.B) {
	backoff := Linear(300 * time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = backoff(i%5 + 1)
	}
}
