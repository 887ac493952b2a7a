package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/avlek/shopledger/internal/adapter/http"
	"github.com/avlek/shopledger/internal/adapter/http/handler"
	postgresRepo "github.com/avlek/shopledger/internal/adapter/repository/postgres"
	redisRepo "github.com/avlek/shopledger/internal/adapter/repository/redis"
	"github.com/avlek/shopledger/internal/infrastructure/auth"
	"github.com/avlek/shopledger/internal/infrastructure/config"
	"github.com/avlek/shopledger/internal/infrastructure/logger"
	"github.com/avlek/shopledger/internal/infrastructure/metrics"
	"github.com/avlek/shopledger/internal/infrastructure/postgres"
	"github.com/avlek/shopledger/internal/infrastructure/redis"
	"github.com/avlek/shopledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	itemRepo := postgresRepo.NewItemRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen, cfg.StartingBalance)
	catalogUC := usecase.NewCatalogUseCase(itemRepo, idGen, cache)
	walletUC := usecase.NewWalletUseCase(txManager, userRepo, itemRepo, entryRepo, idGen, retrier, cache, cfg.StartingBalance)

	// Initialize metrics and auth
	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager, m)
	itemHandler := handler.NewItemHandler(catalogUC, walletUC, m)
	walletHandler := handler.NewWalletHandler(walletUC, m)
	adminHandler := handler.NewAdminHandler(catalogUC, walletUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		ItemHandler:      itemHandler,
		WalletHandler:    walletHandler,
		AdminHandler:     adminHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		Logger:           appLogger,
		Metrics:          m,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
