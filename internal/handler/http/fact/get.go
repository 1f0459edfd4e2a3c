package fact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fact-relay/internal/domain/entity"
	"fact-relay/internal/handler/http/respond"
	"fact-relay/internal/infra/factsource"
	"fact-relay/internal/observability/metrics"
)

// Service is the application-layer capability the handler needs.
type Service interface {
	// Get returns a fact, already shielded by the retry and fallback
	// policies. An error here survived the whole policy chain.
	Get(ctx context.Context) (entity.Fact, error)
}

// GetHandler serves GET /fact.
type GetHandler struct{ Svc Service }

// ServeHTTP returns one fact
// @Summary      Get a fact
// @Description  Fetches a fact from the upstream under the retry policy. When the upstream stays unreachable, the configured stand-in fact is served instead, so clients normally see 200 even during outages.
// @Tags         facts
// @Produce      json
// @Success      200 {object} DTO "Fact document (fresh or stand-in)"
// @Failure      502 {string} string "Upstream rejected the request permanently"
// @Failure      500 {string} string "Internal server error"
// @Router       /fact [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	fact, err := h.Svc.Get(r.Context())
	metrics.RecordOperationDuration("get_fact", time.Since(start))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := DTO{
		Fact:        fact.Text,
		Length:      fact.Length,
		RetrievedAt: fact.Retrieved,
	}

	respond.JSON(w, http.StatusOK, out)
}

// statusFor maps a surviving error to an HTTP status. Permanent upstream
// rejections and malformed upstream answers are the upstream's fault (502);
// everything else is ours (500).
func statusFor(err error) int {
	var sErr *factsource.StatusError
	if errors.As(err, &sErr) {
		return http.StatusBadGateway
	}
	var dErr *factsource.DecodeError
	if errors.As(err, &dErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
