// Package http provides HTTP handlers and middleware for the web application.
// It includes the fact endpoint, health check endpoints, metrics collection,
// and various middleware components.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded", or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded", or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// UpstreamChecker reports whether the fact upstream is currently reachable.
// Implemented by factsource.Client.
type UpstreamChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoint requests.
//
// An unreachable upstream is reported as "degraded", not "unhealthy": the
// fallback policy keeps the fact endpoint answering during upstream outages,
// so the service itself is still operational. The check exists to make an
// outage visible before the fallback-rate metrics do.
type HealthHandler struct {
	Upstream UpstreamChecker // optional; nil skips the upstream check
	Version  string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK unless a check reports a hard failure.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	if h.Upstream != nil {
		checks["upstream"] = h.checkUpstream(ctx)
	} else {
		checks["upstream"] = CheckStatus{
			Status:  "healthy",
			Message: "not checked",
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, check := range checks {
		if check.Status == "degraded" && status == "healthy" {
			status = "degraded"
		}
		if check.Status == "unhealthy" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// checkUpstream pings the fact upstream. Failures degrade rather than fail
// the service because the fallback policy still answers requests.
func (h *HealthHandler) checkUpstream(ctx context.Context) CheckStatus {
	start := time.Now()
	if err := h.Upstream.Ping(ctx); err != nil {
		return CheckStatus{
			Status:  "degraded",
			Message: "upstream unreachable, serving from fallback",
			Details: map[string]interface{}{
				"error":      err.Error(),
				"latency_ms": time.Since(start).Milliseconds(),
			},
		}
	}

	return CheckStatus{
		Status: "healthy",
		Details: map[string]interface{}{
			"latency_ms": time.Since(start).Milliseconds(),
		},
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
//
// Readiness deliberately ignores the upstream: the fallback policy serves
// requests through an outage, so the pod can take traffic as soon as it is
// up.
type ReadyHandler struct{}

// ServeHTTP returns 200 OK once the server is accepting requests.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
