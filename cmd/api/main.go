package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"fact-relay/internal/config"
	"fact-relay/internal/infra/factsource"
	"fact-relay/internal/infra/faultinject"
	"fact-relay/internal/observability/logging"
	"fact-relay/internal/observability/slo"
	"fact-relay/internal/observability/tracing"
	"fact-relay/internal/usecase/fact"
	"fact-relay/pkg/resilience"

	hhttp "fact-relay/internal/handler/http"
	hfact "fact-relay/internal/handler/http/fact"
	"fact-relay/internal/handler/http/requestid"

	_ "fact-relay/docs" // swagger docs
)

// @title           Fact Relay API
// @version         1.0
// @description     Fact relay service with a retry-then-fallback resilience policy.
// @description     Fetches facts from an upstream provider, retries transient failures on a linear backoff schedule, and serves a configured stand-in fact when the upstream stays down.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	// Missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	logger := initLogger()
	version := getVersion()

	profile := loadProfile(logger)
	upstream := mustUpstream(logger)
	svc, engineMetrics := setupService(logger, profile, upstream)

	handler := setupRoutes(logger, svc, upstream, engineMetrics, version)

	logSLOTargets(logger)
	runServer(logger, handler, version)
}

// initLogger picks the log handler from LOG_FORMAT: "text" gives colorized
// output for local development, anything else gives JSON.
func initLogger() *slog.Logger {
	var logger *slog.Logger
	if os.Getenv("LOG_FORMAT") == "text" {
		logger = logging.NewTextLogger()
	} else {
		logger = logging.NewLogger()
	}
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// loadProfile loads the resilience profile named by RESILIENCE_CONFIG_PATH.
// An unset path yields the reference profile.
func loadProfile(logger *slog.Logger) *config.ResilienceConfig {
	path := os.Getenv("RESILIENCE_CONFIG_PATH")
	profile, err := config.LoadResilienceConfig(path)
	if err != nil {
		logger.Error("failed to load resilience profile",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("resilience profile loaded",
		slog.Int("max_attempts", profile.Retry.MaxAttempts),
		slog.String("backoff", profile.Retry.Backoff.Kind),
		slog.Bool("fault_injection", profile.FaultInjection.Enabled))
	return profile
}

// mustUpstream builds the upstream client used by the fact service and the
// health check.
func mustUpstream(logger *slog.Logger) *factsource.Client {
	cfg := factsource.LoadConfigFromEnv()
	client, err := factsource.NewClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build upstream client", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("upstream configured",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout),
		slog.Float64("rps", cfg.RequestsPerSecond))
	return client
}

// setupService wires the fact service with its injector, upstream, and the
// engine metrics registry that later joins the /metrics scrape.
func setupService(logger *slog.Logger, profile *config.ResilienceConfig, upstream *factsource.Client) (*fact.Service, *resilience.PrometheusMetrics) {
	engineMetrics := resilience.NewPrometheusMetrics()

	svc, err := fact.NewService(fact.ServiceConfig{
		Source:   upstream,
		Injector: buildInjector(logger, profile),
		Profile:  profile,
		Metrics:  engineMetrics,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to build fact service", slog.Any("error", err))
		os.Exit(1)
	}
	return svc, engineMetrics
}

// buildInjector turns the fault injection profile into an injector. Seed zero
// means derive one from the clock so repeated runs differ.
func buildInjector(logger *slog.Logger, profile *config.ResilienceConfig) faultinject.Injector {
	fi := profile.FaultInjection
	if !fi.Enabled {
		return faultinject.Disabled()
	}

	seed := fi.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Warn("fault injection ENABLED - do not run this profile in production",
		slog.Float64("probability", fi.Probability),
		slog.Int64("seed", seed))
	return faultinject.NewRandom(fi.Probability, seed, factsource.Injected)
}

// setupRoutes registers all HTTP routes and applies the middleware chain.
func setupRoutes(
	logger *slog.Logger,
	svc *fact.Service,
	upstream *factsource.Client,
	engineMetrics *resilience.PrometheusMetrics,
	version string,
) http.Handler {
	mux := http.NewServeMux()

	hfact.Register(mux, svc)

	mux.Handle("/health", &hhttp.HealthHandler{Upstream: upstream, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{})
	mux.Handle("/live", &hhttp.LiveHandler{})

	// One scrape covers both the HTTP metrics and the policy engine's own
	// registry.
	mux.Handle("/metrics", hhttp.MetricsHandler(engineMetrics.Registry()))

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID, Recovery, Logging, Body Limit,
// Timeout, Metrics, Tracing.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	requestTimeout := 15 * time.Second

	chain := handler

	// Applied in reverse order (innermost to outermost).
	chain = tracing.Middleware(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// logSLOTargets records the targets the dashboards alert on, so a log scrape
// shows which build ran with which objectives.
func logSLOTargets(logger *slog.Logger) {
	logger.Info("SLO targets",
		slog.Float64("availability_pct", slo.AvailabilitySLO),
		slog.Float64("latency_p95_s", slo.LatencyP95SLO),
		slog.Float64("latency_p99_s", slo.LatencyP99SLO),
		slog.Float64("error_rate", slo.ErrorRateSLO),
		slog.Float64("fallback_rate", slo.FallbackRateSLO))
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
