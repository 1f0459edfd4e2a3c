package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "status 200", statusCode: http.StatusOK},
		{name: "status 502", statusCode: http.StatusBadGateway},
		{name: "status 500", statusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(tt.statusCode)

			assert.Equal(t, tt.statusCode, wrapped.StatusCode())
			assert.Equal(t, tt.statusCode, rec.Code)
		})
	}
}

func TestResponseWriter_WriteHeader_MultipleCallsIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())

	// Second call must not overwrite the recorded status.
	wrapped.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
}

func TestResponseWriter_Write(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		expectedSize int
	}{
		{
			name:         "empty write",
			data:         []byte{},
			expectedSize: 0,
		},
		{
			name:         "small write",
			data:         []byte("hello"),
			expectedSize: 5,
		},
		{
			name:         "larger write",
			data:         []byte(`{"fact":"Cats sleep 70% of their lives.","length":31}`),
			expectedSize: 53,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			n, err := wrapped.Write(tt.data)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSize, n)
			assert.Equal(t, tt.expectedSize, wrapped.BytesWritten())
			assert.Equal(t, string(tt.data), rec.Body.String())
		})
	}
}

func TestResponseWriter_Write_ImplicitStatusCode(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	_, err := wrapped.Write([]byte("test"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
}

func TestResponseWriter_Write_MultipleWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n1, err1 := wrapped.Write([]byte("hello "))
	n2, err2 := wrapped.Write([]byte("world"))

	require.NoError(t, err1)
	require.NoError(t, err2)

	assert.Equal(t, 11, n1+n2)
	assert.Equal(t, 11, wrapped.BytesWritten())
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Equal(t, rec, wrapped.Unwrap())
}

func TestResponseWriter_MiddlewarePattern(t *testing.T) {
	// The status must be readable after the inner handler returns.
	var status, bytes int
	middleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := Wrap(w)
			next.ServeHTTP(wrapped, r)
			status = wrapped.StatusCode()
			bytes = wrapped.BytesWritten()
		})
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	req := httptest.NewRequest(http.MethodGet, "/fact", nil)
	rec := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, len("upstream unavailable"), bytes)
}
