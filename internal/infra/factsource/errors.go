package factsource

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error taxonomy for the fact upstream. Transient errors are the designated
// failure class the resilience policies act on; everything else propagates to
// the caller untouched.

// OpInject marks a TransientError produced by the fault injector rather than
// a real upstream exchange.
const OpInject = "inject"

// TransientError represents a failure that is expected to clear on its own:
// a transport fault, an upstream 5xx/429/408, or an injected fault. These are
// the only errors the retry and fallback policies handle.
type TransientError struct {
	Op         string // operation that failed: "request" or OpInject
	StatusCode int    // HTTP status when a status caused the failure, else 0
	Err        error  // underlying cause, may be nil for status-only failures
}

func (e *TransientError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: upstream unavailable (status %d)", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: transient upstream failure", e.Op)
	}
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// StatusError represents a permanent upstream rejection (a non-2xx status
// outside the transient set). It is never retried or recovered.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream rejected request: %s", e.Status)
}

// DecodeError represents an upstream response body that could not be parsed
// into a fact document. Retrying would replay the same malformed answer, so
// decode failures are permanent.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode upstream response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Injected returns the designated failure the fault injector substitutes for
// a real upstream call.
func Injected() error {
	return &TransientError{Op: OpInject, Err: errors.New("injected fault")}
}

// IsTransient reports whether err belongs to the designated transient failure
// class. It is the Handle predicate for both the retry and fallback policies.
func IsTransient(err error) bool {
	var tErr *TransientError
	return errors.As(err, &tErr)
}

// ClassifyError maps an upstream error to the error_type label used by the
// upstream metrics: injected, timeout, status_5xx, status_4xx, decode, or
// network.
func ClassifyError(err error) string {
	var tErr *TransientError
	if errors.As(err, &tErr) {
		switch {
		case tErr.Op == OpInject:
			return "injected"
		case tErr.StatusCode >= 500:
			return "status_5xx"
		case tErr.StatusCode != 0:
			return "status_4xx"
		case isTimeout(err):
			return "timeout"
		default:
			return "network"
		}
	}

	var sErr *StatusError
	if errors.As(err, &sErr) {
		return "status_4xx"
	}

	var dErr *DecodeError
	if errors.As(err, &dErr) {
		return "decode"
	}

	if isTimeout(err) {
		return "timeout"
	}
	return "network"
}

// isTimeout reports whether err is a deadline-style failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
