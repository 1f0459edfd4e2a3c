package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		upstream       UpstreamChecker
		expectedStatus int
		wantStatus     string
		wantUpstream   string
	}{
		{
			name:           "reachable upstream",
			upstream:       pingFunc(func(context.Context) error { return nil }),
			expectedStatus: http.StatusOK,
			wantStatus:     "healthy",
			wantUpstream:   "healthy",
		},
		{
			name:           "unreachable upstream degrades but stays 200",
			upstream:       pingFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") }),
			expectedStatus: http.StatusOK,
			wantStatus:     "degraded",
			wantUpstream:   "degraded",
		},
		{
			name:           "no checker configured",
			upstream:       nil,
			expectedStatus: http.StatusOK,
			wantStatus:     "healthy",
			wantUpstream:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &HealthHandler{Upstream: tt.upstream, Version: "test"}

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Header().Get("Cache-Control"), "no-store")

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, "test", response.Version)
			assert.NotEmpty(t, response.Timestamp)

			upstream, ok := response.Checks["upstream"]
			require.True(t, ok, "upstream check missing from response")
			assert.Equal(t, tt.wantUpstream, upstream.Status)
		})
	}
}

func TestHealthHandler_DegradedIncludesError(t *testing.T) {
	handler := &HealthHandler{
		Upstream: pingFunc(func(context.Context) error { return errors.New("upstream timed out") }),
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	upstream := response.Checks["upstream"]
	assert.Equal(t, "upstream unreachable, serving from fallback", upstream.Message)
	assert.Contains(t, upstream.Details, "error")
	assert.Contains(t, upstream.Details, "latency_ms")
}

func TestHealthHandler_CheckerSeesDeadline(t *testing.T) {
	var hadDeadline bool
	handler := &HealthHandler{
		Upstream: pingFunc(func(ctx context.Context) error {
			_, hadDeadline = ctx.Deadline()
			return nil
		}),
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, hadDeadline, "ping should run under a deadline")
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	handler := &ReadyHandler{}

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ready", rr.Body.String())
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	handler := &LiveHandler{}

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
}
