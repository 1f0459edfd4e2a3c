// Package resilience provides composable execution policies for unreliable
// operations.
//
// The package implements two policies — bounded retry with configurable
// backoff, and terminal fallback — plus a composer that nests them so retries
// are exhausted before the fallback recovery runs. Policies are generic over
// the operation's result type, framework-agnostic, and reusable across
// contexts (HTTP calls, gRPC, CLI, background jobs).
//
// A Policy is configured once and is stateless across executions: every
// Execute call runs an independent attempt sequence, so a single instance is
// safe for concurrent use. Side effects (logging, metrics, dead-letter
// handling) are supplied by the caller through the OnRetry and Recover
// callbacks and the Metrics sink; the executors themselves perform no I/O.
package resilience

import (
	"context"
	"time"
)

// Operation is the unit of work a policy executes. It must respect ctx
// cancellation if it blocks.
type Operation[T any] func(ctx context.Context) (T, error)

// Policy executes an operation under a resilience strategy.
//
// Implementations must be safe for concurrent use: Execute may be called from
// many goroutines at once and each call must run in isolation.
type Policy[T any] interface {
	// Execute runs op under the policy and returns either op's success value,
	// a recovery result, or the failure the policy chose to propagate.
	Execute(ctx context.Context, op Operation[T]) (T, error)
}

// Metrics defines the interface for recording policy execution metrics.
//
// Implementations can use Prometheus, StatsD, or custom metrics systems.
// The zero configuration uses NoOpMetrics, so instrumenting a policy is
// opt-in and never a hard dependency of the executors.
type Metrics interface {
	// RecordAttempt records one invocation of the wrapped operation.
	//
	// Parameters:
	//   - policy: Name of the policy making the attempt
	RecordAttempt(policy string)

	// RecordRetry records a scheduled retry and the backoff wait preceding it.
	//
	// Parameters:
	//   - policy: Name of the policy scheduling the retry
	//   - wait: Backoff duration before the next attempt
	RecordRetry(policy string, wait time.Duration)

	// RecordExhaustion records that a policy ran out of attempts and
	// propagated the last failure.
	//
	// Parameters:
	//   - policy: Name of the policy that exhausted its attempts
	RecordExhaustion(policy string)

	// RecordRecovery records a fallback recovery invocation.
	//
	// Parameters:
	//   - policy: Name of the fallback policy
	//   - recovered: true when the recovery action returned a substitute
	//     result, false when it failed and its error propagated
	RecordRecovery(policy string, recovered bool)
}
