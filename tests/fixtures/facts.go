// Package fixtures provides canned upstream payloads and httptest handlers
// for exercising the fact pipeline without a real upstream.
package fixtures

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Payload constants mirror the upstream's JSON document shape.
const (
	// FactJSON is a well-formed upstream response.
	FactJSON = `{"fact":"Cats sleep 70% of their lives.","length":30}`

	// FactJSONMultibyte has a length counted in runes, not bytes.
	FactJSONMultibyte = `{"fact":"ねこは よく眠る","length":8}`

	// FactJSONTruncated is cut off mid-document.
	FactJSONTruncated = `{"fact":"Cats sleep 70% of th`

	// FactJSONWrongShape decodes but fails validation.
	FactJSONWrongShape = `{"fact":"","length":-3}`
)

// FactText is the text inside FactJSON, for asserting on decoded values.
const FactText = "Cats sleep 70% of their lives."

// AlwaysOK returns a handler that serves FactJSON on every request.
func AlwaysOK() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, FactJSON)
	}
}

// AlwaysStatus returns a handler that answers every request with the given
// status code and an empty body.
func AlwaysStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// FailThenOK returns a handler that answers the first n requests with the
// given status and every later request with FactJSON. The handler is safe for
// concurrent use.
func FailThenOK(n int, code int) http.HandlerFunc {
	var calls atomic.Int64
	return func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= int64(n) {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, FactJSON)
	}
}

// Malformed returns a handler that serves a 200 with a truncated body, the
// decode-error path.
func Malformed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, FactJSONTruncated)
	}
}
