package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/surcofin/cajaflow/internal/adapter/http/handler"
	"github.com/surcofin/cajaflow/internal/adapter/http/middleware"
	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler      *handler.AccountHandler
	MovementHandler     *handler.MovementHandler
	ConciliationHandler *handler.ConciliationHandler
	RateHandler         *handler.RateHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	IdempotencyTTL      time.Duration
	RateLimiter         *middleware.RateLimiter
	Metrics             *metrics.Metrics
	Logger              zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			ttl := cfg.IdempotencyTTL
			if ttl == 0 {
				ttl = 24 * time.Hour
			}
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, ttl).Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/movements", cfg.MovementHandler.ListByAccount)
		})

		r.Get("/counterparties/{id}/currencies", cfg.AccountHandler.EnabledCurrencies)

		// Movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.MovementHandler.Create)
			r.Post("/pair", cfg.MovementHandler.CreatePair)
			r.Get("/pending", cfg.MovementHandler.ListPending)
			r.Get("/{id}", cfg.MovementHandler.Get)
			r.Patch("/{id}", cfg.MovementHandler.Update)
		})

		// Conciliation
		r.Post("/conciliation/confirm", cfg.ConciliationHandler.Confirm)

		// Rates
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", cfg.RateHandler.Snapshot)
			r.Get("/preview", cfg.RateHandler.Preview)
		})
	})

	return r
}
