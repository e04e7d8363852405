package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/adapter/http/handler"
	apimiddleware "github.com/surcofin/cajaflow/internal/adapter/http/middleware"
	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
	"github.com/surcofin/cajaflow/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"name":"Caja Central","ledger_currency":"local"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/movements",
		"GET /api/v1/counterparties/{id}/currencies",
		"POST /api/v1/movements/",
		"POST /api/v1/movements/pair",
		"GET /api/v1/movements/pending",
		"PATCH /api/v1/movements/{id}",
		"POST /api/v1/conciliation/confirm",
		"GET /api/v1/rates/",
		"GET /api/v1/rates/preview",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockAccountRepository()
	rates := mocks.NewMockRateSource(domain.RateSnapshot{
		Official: decimal.NewFromInt(1000),
		Blue:     decimal.NewFromInt(1200),
	})
	idGen := mocks.NewMockIDGenerator()

	movements := usecase.NewMovementUseCase(movementRepo, accountRepo, rates, idGen)
	compound := usecase.NewCompoundUseCase(movements, movementRepo, idGen, zerolog.Nop())

	cfg := RouterConfig{
		AccountHandler:      handler.NewAccountHandler(usecase.NewAccountUseCase(accountRepo, idGen), nil),
		MovementHandler:     handler.NewMovementHandler(movements, compound, nil),
		ConciliationHandler: handler.NewConciliationHandler(usecase.NewConciliationUseCase(movementRepo), nil),
		RateHandler:         handler.NewRateHandler(usecase.NewRateUseCase(rates)),
		HealthHandler:       &handler.HealthHandler{},
		Logger:              zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
