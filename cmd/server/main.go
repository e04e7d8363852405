package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/surcofin/cajaflow/internal/adapter/http"
	"github.com/surcofin/cajaflow/internal/adapter/http/handler"
	"github.com/surcofin/cajaflow/internal/adapter/http/middleware"
	postgresRepo "github.com/surcofin/cajaflow/internal/adapter/repository/postgres"
	redisRepo "github.com/surcofin/cajaflow/internal/adapter/repository/redis"
	"github.com/surcofin/cajaflow/internal/infrastructure/config"
	"github.com/surcofin/cajaflow/internal/infrastructure/logger"
	"github.com/surcofin/cajaflow/internal/infrastructure/metrics"
	"github.com/surcofin/cajaflow/internal/infrastructure/postgres"
	"github.com/surcofin/cajaflow/internal/infrastructure/ratesource"
	"github.com/surcofin/cajaflow/internal/infrastructure/redis"
	"github.com/surcofin/cajaflow/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories and the rate source chain
	movementRepo := postgresRepo.NewMovementRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	quoteClient := ratesource.NewClient(cfg.RateSourceURL, cfg.RateSourceTimeout, cfg.RateSourceMaxElapsed, log)
	rateSource := redisRepo.NewRateCache(redisClient, quoteClient, cfg.RateCacheTTL, log)

	// Initialize use cases
	movementUC := usecase.NewMovementUseCase(movementRepo, accountRepo, rateSource, idGen)
	compoundUC := usecase.NewCompoundUseCase(movementUC, movementRepo, idGen, log)
	conciliationUC := usecase.NewConciliationUseCase(movementRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	rateUC := usecase.NewRateUseCase(rateSource)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, m)
	movementHandler := handler.NewMovementHandler(movementUC, compoundUC, m)
	conciliationHandler := handler.NewConciliationHandler(conciliationUC, m)
	rateHandler := handler.NewRateHandler(rateUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(50, 100, m)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:      accountHandler,
		MovementHandler:     movementHandler,
		ConciliationHandler: conciliationHandler,
		RateHandler:         rateHandler,
		HealthHandler:       healthHandler,
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         rateLimiter,
		Metrics:             m,
		Logger:              log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
