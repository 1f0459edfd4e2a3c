// Package factsource provides the outbound HTTP client for the fact
// upstream. It maps transport and status outcomes onto the error taxonomy
// the resilience policies are configured against: transient failures
// (network faults, 5xx, 429, 408, injected faults) are designated for
// retry and fallback, everything else is permanent and propagates.
package factsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fact-relay/internal/domain/entity"
)

// maxResponseBody bounds how much of an upstream response is read. Fact
// documents are a few hundred bytes; anything near this limit is garbage.
const maxResponseBody = 64 << 10

// factDocument mirrors the upstream wire format.
type factDocument struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

// Client fetches facts from the configured upstream. A token-bucket limiter
// precedes every request so retry storms cannot exceed the outbound budget.
// The client is safe for concurrent use.
type Client struct {
	cfg     Config
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient validates cfg and returns a ready client. The logger is used for
// debug-level request logging only; outcome logging belongs to the caller.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid factsource config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logger,
	}, nil
}

// Fetch retrieves one fact from the upstream.
//
// Error mapping:
//   - transport failure (including timeout) → *TransientError
//   - 5xx, 429, 408 → *TransientError with the status code
//   - any other non-2xx → *StatusError
//   - unparsable or invalid body → *DecodeError
//   - limiter wait aborted by ctx → ctx error, wrapped
func (c *Client) Fetch(ctx context.Context) (entity.Fact, error) {
	var zero entity.Fact

	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("upstream budget wait: %w", err)
	}

	req, err := c.newRequest(ctx)
	if err != nil {
		return zero, err
	}

	c.logger.Debug("fetching fact from upstream",
		slog.String("url", req.URL.String()))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return zero, &TransientError{Op: "request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if terr := transientStatus(resp.StatusCode); terr != nil {
		return zero, terr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var doc factDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&doc); err != nil {
		return zero, &DecodeError{Err: err}
	}

	fact := entity.NewFact(doc.Fact, doc.Length, time.Now().UTC())
	if err := fact.Validate(); err != nil {
		return zero, &DecodeError{Err: err}
	}
	return fact, nil
}

// Ping checks upstream reachability for health reporting. It shares the
// client's budget and timeout but discards the response body; any non-2xx
// status or transport failure is reported as an error.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("upstream budget wait: %w", err)
	}

	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransientError{Op: "request", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream ping returned %s", resp.Status)
	}
	return nil
}

// newRequest builds the upstream GET request with the configured identity.
func (c *Client) newRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+c.cfg.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	return req, nil
}

// transientStatus maps the transient status set to a TransientError, or nil
// for anything outside it.
func transientStatus(code int) error {
	if code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout {
		return &TransientError{Op: "request", StatusCode: code}
	}
	return nil
}
