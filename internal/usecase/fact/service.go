// Package fact implements the application service behind GET /fact. It owns
// the composition of the resilience policies: a bounded retry around the
// upstream fetch, wrapped by a terminal fallback that serves a configured
// stand-in fact once retries are exhausted. All side effects — logging and
// metrics for retries, recoveries, and upstream outcomes — are composed here
// at the boundary; the policy engine itself performs no I/O.
package fact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fact-relay/internal/config"
	"fact-relay/internal/domain/entity"
	"fact-relay/internal/infra/factsource"
	"fact-relay/internal/infra/faultinject"
	"fact-relay/internal/observability/logging"
	"fact-relay/internal/observability/metrics"
	"fact-relay/pkg/resilience"
)

// Policy names used for engine metrics.
const (
	retryPolicyName    = "fact_retry"
	fallbackPolicyName = "fact_fallback"
)

// Source fetches fact documents from the upstream. Implemented by
// factsource.Client; tests substitute deterministic fakes.
type Source interface {
	Fetch(ctx context.Context) (entity.Fact, error)
}

// ServiceConfig wires the service's collaborators.
type ServiceConfig struct {
	// Source is the upstream client. Required.
	Source Source

	// Injector is the synthetic failure source consulted before each real
	// call. Nil disables injection.
	Injector faultinject.Injector

	// Profile controls the retry schedule and the fallback stand-in.
	// Nil uses the default reference profile.
	Profile *config.ResilienceConfig

	// Metrics is the engine metrics sink shared by both policies.
	// Nil disables engine metrics.
	Metrics resilience.Metrics

	// Logger receives retry and recovery log lines. Nil uses slog.Default.
	Logger *slog.Logger
}

// Service serves facts through the composed retry-then-fallback policy. The
// policy is built once at construction and is stateless across requests, so
// one Service instance handles concurrent requests without locking.
type Service struct {
	source   Source
	injector faultinject.Injector
	policy   resilience.Policy[entity.Fact]
	standIn  string
	logger   *slog.Logger
}

// NewService validates cfg, builds the retry and fallback policies from the
// resilience profile, and composes them with the fallback outermost.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("fact service requires a source")
	}
	if cfg.Injector == nil {
		cfg.Injector = faultinject.Disabled()
	}
	if cfg.Profile == nil {
		cfg.Profile = config.DefaultResilienceConfig()
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resilience profile: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Service{
		source:   cfg.Source,
		injector: cfg.Injector,
		standIn:  cfg.Profile.Fallback.StandInText,
		logger:   cfg.Logger,
	}

	retry, err := resilience.NewRetry[entity.Fact](resilience.RetryConfig{
		Name:        retryPolicyName,
		MaxAttempts: cfg.Profile.Retry.MaxAttempts,
		Backoff:     cfg.Profile.Retry.Backoff.Build(),
		OnRetry:     s.onRetry,
		Handle:      factsource.IsTransient,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build retry policy: %w", err)
	}

	fallback, err := resilience.NewFallback[entity.Fact](resilience.FallbackConfig[entity.Fact]{
		Name:    fallbackPolicyName,
		Recover: s.recoverFact,
		Handle:  factsource.IsTransient,
		Metrics: cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build fallback policy: %w", err)
	}

	// Fallback outermost: retries are exhausted before recovery runs.
	s.policy = resilience.Wrap[entity.Fact](fallback, retry)

	return s, nil
}

// Get returns a fact, retrying transient upstream failures per the profile
// and falling back to the stand-in fact once attempts are exhausted. The
// caller sees either a fact or a non-transient failure; intermediate retry
// failures never surface.
func (s *Service) Get(ctx context.Context) (entity.Fact, error) {
	return s.policy.Execute(ctx, s.fetchOnce)
}

// fetchOnce is the operation the composed policy executes: consult the fault
// injector, then hit the real upstream. Upstream metrics are recorded here so
// every attempt is counted, not just the ones that reach the caller.
func (s *Service) fetchOnce(ctx context.Context) (entity.Fact, error) {
	start := time.Now()

	if err := s.injector.Inject(ctx); err != nil {
		metrics.RecordFaultInjected()
		metrics.RecordUpstreamFailure(time.Since(start), factsource.ClassifyError(err))
		return entity.Fact{}, err
	}

	fact, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.RecordUpstreamFailure(time.Since(start), factsource.ClassifyError(err))
		return entity.Fact{}, err
	}

	metrics.RecordUpstreamSuccess(time.Since(start))
	metrics.RecordFactServed("fresh", fact.Length)
	return fact, nil
}

// onRetry is the retry observer: one warn line per scheduled retry with the
// failure, the 1-based attempt index, and the wait before the next attempt.
func (s *Service) onRetry(err error, attempt int, wait time.Duration) {
	s.logger.Warn("upstream fetch failed, retrying",
		slog.Int("attempt", attempt),
		slog.Duration("wait", wait),
		slog.String("error_type", factsource.ClassifyError(err)),
		slog.Any("error", err),
	)
}

// recoverFact is the terminal recovery action. It runs at most once per
// request, only after the retry budget is spent, and serves the configured
// stand-in fact. A context already past its deadline fails the recovery
// instead of fabricating a result nobody is waiting for.
func (s *Service) recoverFact(ctx context.Context, cause error) (entity.Fact, error) {
	if err := ctx.Err(); err != nil {
		return entity.Fact{}, err
	}

	logger := logging.WithRequestID(ctx, s.logger)
	logger.Warn("retries exhausted, serving stand-in fact",
		slog.String("error_type", factsource.ClassifyError(cause)),
		slog.Any("error", cause),
	)

	fact := entity.FallbackFact(s.standIn, time.Now().UTC())
	metrics.RecordFactServed("fallback", fact.Length)
	return fact, nil
}
