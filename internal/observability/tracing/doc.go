// Package tracing provides OpenTelemetry tracing integration.
//
// It exposes a named tracer for the fact-relay service and an HTTP
// middleware that creates a server span per request, propagates W3C
// Trace Context from incoming headers, and reflects the trace ID back
// to callers via the X-Trace-Id response header.
//
// Example usage:
//
//	import "fact-relay/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	mux.Handle("/fact", factHandler)
//	handler := tracing.Middleware(mux)
//
//	func fetchUpstream(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "factsource.fetch")
//	    defer span.End()
//	    // ... call the upstream API ...
//	}
package tracing
