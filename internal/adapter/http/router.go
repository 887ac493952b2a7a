package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/avlek/shopledger/internal/adapter/http/handler"
	"github.com/avlek/shopledger/internal/adapter/http/middleware"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/infrastructure/auth"
	"github.com/avlek/shopledger/internal/infrastructure/metrics"
	"github.com/avlek/shopledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	ItemHandler   *handler.ItemHandler
	WalletHandler *handler.WalletHandler
	AdminHandler  *handler.AdminHandler
	HealthHandler *handler.HealthHandler

	JWTManager *auth.JWTManager
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := middleware.AuthMiddleware(cfg.JWTManager)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// Idempotency middleware for mutating requests
	var idempotency func(http.Handler) http.Handler
	if cfg.IdempotencyStore != nil {
		idempotency = middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap
	}

	// Public endpoints
	r.Group(func(r chi.Router) {
		if idempotency != nil {
			r.Use(idempotency)
		}

		r.Post("/accounts", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)
	})

	r.Get("/items", cfg.ItemHandler.List)
	r.Get("/items/{id}", cfg.ItemHandler.Get)

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		if idempotency != nil {
			r.Use(idempotency)
		}

		r.Get("/auth/me", cfg.AuthHandler.Me)
		r.Post("/items/{id}/purchase", cfg.ItemHandler.Purchase)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", cfg.WalletHandler.Balance)
			r.Post("/spend", cfg.WalletHandler.Spend)
			r.Get("/transactions", cfg.WalletHandler.Transactions)
			r.Get("/verify", cfg.WalletHandler.Verify)
		})

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)

			r.Post("/items", cfg.AdminHandler.CreateItem)
			r.Post("/wallet/credit", cfg.AdminHandler.Credit)
		})
	})

	return r
}
