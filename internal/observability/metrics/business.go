package metrics

import (
	"time"
)

// RecordFactServed records a fact served to a client.
// Outcome should be "fresh" for upstream-supplied facts and "fallback"
// for facts produced by the recovery path.
func RecordFactServed(outcome string, length int) {
	FactsServedTotal.WithLabelValues(outcome).Inc()
	FactLength.Observe(float64(length))
}

// RecordUpstreamSuccess records a successful upstream fetch.
// This tracks both the duration of the call and refreshes the
// last-retrieved timestamp used for staleness alerting.
//
// Example:
//
//	start := time.Now()
//	fact, err := source.Fetch(ctx)
//	if err == nil {
//	    RecordUpstreamSuccess(time.Since(start))
//	}
func RecordUpstreamSuccess(duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues("success").Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
	LastFactRetrievedTimestamp.SetToCurrentTime()
}

// RecordUpstreamFailure records a failed upstream fetch.
// The error type classifies the failure for alerting; use one of
// "network", "timeout", "status_4xx", "status_5xx", "decode", or "injected".
//
// Example:
//
//	start := time.Now()
//	_, err := source.Fetch(ctx)
//	if err != nil {
//	    RecordUpstreamFailure(time.Since(start), ClassifyError(err))
//	}
func RecordUpstreamFailure(duration time.Duration, errorType string) {
	UpstreamRequestsTotal.WithLabelValues("failure").Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
	UpstreamErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordFaultInjected records a synthetic failure introduced by the
// fault injector. These also count as upstream failures with error
// type "injected"; this counter isolates the injector's contribution.
func RecordFaultInjected() {
	FaultsInjectedTotal.Inc()
}
