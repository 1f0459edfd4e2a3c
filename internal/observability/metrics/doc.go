// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Fact serving metrics (outcomes, fact length, staleness)
//   - Upstream fetch metrics (attempts, errors, duration)
//   - Fault injection counters
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint. Policy-level retry and fallback metrics
// live on a separate registry owned by pkg/resilience and are merged into the
// same endpoint at startup.
//
// Example usage:
//
//	import "fact-relay/internal/observability/metrics"
//
//	func serveFact(outcome string, text string) {
//	    start := time.Now()
//	    // ... serve the fact ...
//
//	    metrics.RecordFactServed(outcome, len(text))
//	    metrics.RecordOperationDuration("get_fact", time.Since(start))
//	}
package metrics
