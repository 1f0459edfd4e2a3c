package resilience

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
//
// This implementation provides observability for policy executions:
// - Attempt counters by policy name
// - Retry counters and backoff wait histograms
// - Exhaustion counters (attempt budget spent, failure propagated)
// - Recovery counters by outcome (recovered vs. recovery failed)
//
// All metrics use a custom registry for better testability and isolation.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// attemptsTotal tracks operation invocations made under a policy.
	// Labels:
	//   - policy: Policy name from the config
	attemptsTotal *prometheus.CounterVec

	// retriesTotal tracks scheduled retries (always attempts - executions).
	// Labels:
	//   - policy: Policy name from the config
	retriesTotal *prometheus.CounterVec

	// retryWait tracks the backoff wait inserted before each retry.
	// Labels:
	//   - policy: Policy name from the config
	//
	// Buckets cover the linear 300ms profile (300ms..1.2s) and the fixed
	// 500ms profile with headroom for exponential growth.
	retryWait *prometheus.HistogramVec

	// exhaustionsTotal tracks executions that spent the whole attempt budget.
	// Labels:
	//   - policy: Policy name from the config
	exhaustionsTotal *prometheus.CounterVec

	// recoveriesTotal tracks fallback recovery runs.
	// Labels:
	//   - policy: Policy name from the config
	//   - outcome: "recovered" or "failed"
	recoveriesTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance with a custom
// registry.
//
// Using a custom registry (instead of the global prometheus.DefaultRegisterer)
// provides:
// - Better testability (isolated metrics per test)
// - No metric conflicts when running multiple instances
// - Explicit metric lifecycle management
//
// The registry can be passed to promhttp.HandlerFor() to expose metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	attemptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_attempts_total",
			Help: "Operation invocations made under a policy",
		},
		[]string{"policy"},
	)

	retriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_retries_total",
			Help: "Retries scheduled after designated failures",
		},
		[]string{"policy"},
	)

	retryWait := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_retry_wait_seconds",
			Help:    "Backoff wait inserted before each retry",
			Buckets: []float64{0.1, 0.3, 0.5, 0.6, 0.9, 1.2, 2.0, 5.0, 10.0},
		},
		[]string{"policy"},
	)

	exhaustionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_exhaustions_total",
			Help: "Executions that exhausted the attempt budget",
		},
		[]string{"policy"},
	)

	recoveriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_recoveries_total",
			Help: "Fallback recovery runs by outcome",
		},
		[]string{"policy", "outcome"},
	)

	// Register all metrics with the custom registry
	registry.MustRegister(
		attemptsTotal,
		retriesTotal,
		retryWait,
		exhaustionsTotal,
		recoveriesTotal,
	)

	return &PrometheusMetrics{
		registry:         registry,
		attemptsTotal:    attemptsTotal,
		retriesTotal:     retriesTotal,
		retryWait:        retryWait,
		exhaustionsTotal: exhaustionsTotal,
		recoveriesTotal:  recoveriesTotal,
	}
}

// Registry returns the Prometheus registry containing all policy metrics.
//
// This can be used with promhttp.HandlerFor() to expose metrics:
//
//	metrics := NewPrometheusMetrics()
//	http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAttempt records one invocation of the wrapped operation.
func (m *PrometheusMetrics) RecordAttempt(policy string) {
	m.attemptsTotal.WithLabelValues(policy).Inc()
}

// RecordRetry records a scheduled retry and its backoff wait.
func (m *PrometheusMetrics) RecordRetry(policy string, wait time.Duration) {
	m.retriesTotal.WithLabelValues(policy).Inc()
	m.retryWait.WithLabelValues(policy).Observe(wait.Seconds())
}

// RecordExhaustion records that a policy ran out of attempts.
func (m *PrometheusMetrics) RecordExhaustion(policy string) {
	m.exhaustionsTotal.WithLabelValues(policy).Inc()
}

// RecordRecovery records a fallback recovery run.
func (m *PrometheusMetrics) RecordRecovery(policy string, recovered bool) {
	outcome := "recovered"
	if !recovered {
		outcome = "failed"
	}
	m.recoveriesTotal.WithLabelValues(policy, outcome).Inc()
}
