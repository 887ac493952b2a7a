package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	PurchasesCompleted prometheus.Counter
	SpendsCompleted    prometheus.Counter
	CreditsCompleted   prometheus.Counter
	LedgerRejections   *prometheus.CounterVec
	LedgerAmount       *prometheus.HistogramVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		PurchasesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_purchases_completed_total",
			Help: "Total number of completed purchases",
		}),
		SpendsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_spends_completed_total",
			Help: "Total number of completed wallet spends",
		}),
		CreditsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_credits_completed_total",
			Help: "Total number of completed wallet credits",
		}),
		LedgerRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_ledger_rejections_total",
				Help: "Total number of rejected ledger operations by reason",
			},
			[]string{"reason"},
		),
		LedgerAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopledger_ledger_amount",
				Help:    "Amounts moved through the ledger",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"kind"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Cache metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"key"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"key"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
