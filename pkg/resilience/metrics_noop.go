package resilience

import "time"

// NoOpMetrics implements the Metrics interface with no-op implementations.
//
// This implementation is useful for:
// - Testing environments where metrics are not needed
// - Disabling metrics collection (e.g., development mode)
// - Benchmarking policy overhead without metrics cost
//
// All methods are no-ops and have minimal performance impact.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordAttempt is a no-op implementation.
func (m *NoOpMetrics) RecordAttempt(policy string) {
	// No-op
}

// RecordRetry is a no-op implementation.
func (m *NoOpMetrics) RecordRetry(policy string, wait time.Duration) {
	// No-op
}

// RecordExhaustion is a no-op implementation.
func (m *NoOpMetrics) RecordExhaustion(policy string) {
	// No-op
}

// RecordRecovery is a no-op implementation.
func (m *NoOpMetrics) RecordRecovery(policy string, recovered bool) {
	// No-op
}
