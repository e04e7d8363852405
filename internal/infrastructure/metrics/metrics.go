package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	MovementsCreated *prometheus.CounterVec
	MovementsUpdated prometheus.Counter
	MovementAmount   prometheus.Histogram
	RateFallbacks    prometheus.Counter

	// Compound pair metrics
	PairsCreated  prometheus.Counter
	PairRollbacks prometheus.Counter
	PairOrphans   prometheus.Counter

	// Conciliation metrics
	MovementsConfirmed    prometheus.Counter
	ConfirmationFailures  prometheus.Counter
	ConciliationBatchSize prometheus.Histogram

	// Rate source metrics
	RateSourceRequests *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Movement metrics
		MovementsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajaflow_movements_created_total",
				Help: "Total number of movements created by direction",
			},
			[]string{"direction"},
		),
		MovementsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_movements_updated_total",
			Help: "Total number of movement edits",
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cajaflow_movement_amount",
			Help:    "Raw movement amounts in payment currency units",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		RateFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_rate_fallbacks_total",
			Help: "Total conversions valued at the fallback rate of 1",
		}),

		// Compound pair metrics
		PairsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_pairs_created_total",
			Help: "Total number of compound movement pairs created",
		}),
		PairRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_pair_rollbacks_total",
			Help: "Total pair creations rolled back after the inflow leg failed",
		}),
		PairOrphans: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_pair_orphans_total",
			Help: "Total outflow legs left behind when compensation also failed",
		}),

		// Conciliation metrics
		MovementsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_movements_confirmed_total",
			Help: "Total movements confirmed through conciliation",
		}),
		ConfirmationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_confirmation_failures_total",
			Help: "Total confirmation attempts that failed",
		}),
		ConciliationBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cajaflow_conciliation_batch_size",
			Help:    "Number of movements per conciliation batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),

		// Rate source metrics
		RateSourceRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajaflow_rate_source_requests_total",
				Help: "Total quote provider requests by outcome",
			},
			[]string{"outcome"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajaflow_accounts_created_total",
			Help: "Total number of cash accounts created",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajaflow_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cajaflow_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajaflow_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
