package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fact-relay/internal/handler/http/responsewriter"
	"fact-relay/internal/observability/metrics"
)

// MetricsMiddleware records HTTP request metrics including duration, size,
// and status codes. Counters and histograms live in the central metrics
// registry so the handler layer and any background recorders share one set
// of collectors.
// The middleware tracks:
// - Active connections (gauge incremented/decremented per request)
// - Request duration with optimized histogram buckets
// - Request and response sizes
// - Status code distribution
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		// Label with the route, not the raw path, to keep cardinality bounded.
		route := routeLabel(r.URL.Path)

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		status := strconv.Itoa(rw.StatusCode())
		metrics.RecordHTTPRequest(r.Method, route, status, duration,
			int(r.ContentLength), rw.BytesWritten())
	})
}

// routeLabel maps a request path onto the fixed route set served by this
// application. Unregistered paths collapse into one label so probing
// clients cannot explode the label space.
func routeLabel(path string) string {
	switch path {
	case "/fact", "/health", "/ready", "/live", "/metrics":
		return path
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/"
	}
	return "other"
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics
// endpoint. Extra gatherers (such as the resilience engine's registry) are
// merged with the default registry so one scrape covers everything.
func MetricsHandler(extra ...prometheus.Gatherer) http.Handler {
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	gatherers = append(gatherers, extra...)
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}
