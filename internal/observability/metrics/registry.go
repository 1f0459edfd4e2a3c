// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track fact serving and upstream fetch behavior
var (
	// FactsServedTotal counts facts served to clients by outcome.
	// Outcome is "fresh" when the upstream supplied the fact and
	// "fallback" when the recovery value was served instead.
	FactsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facts_served_total",
			Help: "Total number of facts served to clients",
		},
		[]string{"outcome"},
	)

	// FactLength measures the length of served fact text in characters
	FactLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fact_length_chars",
			Help:    "Length of served fact text in characters",
			Buckets: []float64{20, 40, 80, 120, 160, 240, 320, 480, 640},
		},
	)

	// LastFactRetrievedTimestamp records when a fresh fact was last retrieved.
	// A stalling value indicates the upstream has been unreachable.
	LastFactRetrievedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_fact_retrieved_timestamp_seconds",
			Help: "Unix timestamp of the last successful upstream retrieval",
		},
	)

	// UpstreamRequestsTotal counts upstream fetch attempts by result
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream fact fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// UpstreamRequestDuration measures time to fetch a fact from upstream
	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Time taken to fetch a fact from the upstream API",
			Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4},
		},
	)

	// UpstreamErrorsTotal counts upstream fetch errors by type
	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Total number of upstream fetch errors",
		},
		[]string{"error_type"}, // error_type: network, timeout, status_4xx, status_5xx, decode, injected
	)

	// FaultsInjectedTotal counts synthetic failures introduced by the fault injector
	FaultsInjectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faults_injected_total",
			Help: "Total number of synthetic faults injected into upstream calls",
		},
	)
)

// Operation metrics track named internal operations
var (
	// OperationDuration measures the duration of named internal operations
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operation_duration_seconds",
			Help:    "Internal operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
