package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	Deposits         prometheus.Counter
	Withdrawals      prometheus.Counter
	Transfers        prometheus.Counter
	OperationAmount  *prometheus.HistogramVec
	OperationErrors  *prometheus.CounterVec
	TransferDuration prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter

	// Application metrics
	LoansApplied    prometheus.Counter
	LoansDecided    *prometheus.CounterVec
	PoliciesApplied prometheus.Counter
	PoliciesDecided *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
	TxRetries     prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all Prometheus metrics on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		Deposits: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_deposits_total",
			Help: "Total number of deposits",
		}),
		Withdrawals: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_withdrawals_total",
			Help: "Total number of withdrawals",
		}),
		Transfers: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transfers_total",
			Help: "Total number of transfers",
		}),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_operation_amount",
				Help:    "Ledger operation amounts in major units",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_operation_errors_total",
				Help: "Total ledger operation errors by type",
			},
			[]string{"error_type"},
		),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "corebank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Application metrics
		LoansApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_loans_applied_total",
			Help: "Total number of loan applications",
		}),
		LoansDecided: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_loans_decided_total",
				Help: "Total loan decisions by outcome",
			},
			[]string{"decision"},
		),
		PoliciesApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_policies_applied_total",
			Help: "Total number of insurance applications",
		}),
		PoliciesDecided: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_policies_decided_total",
				Help: "Total insurance decisions by outcome",
			},
			[]string{"decision"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "corebank_db_connections",
			Help: "Current number of database connections",
		}),
		TxRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_tx_retries_total",
			Help: "Total transaction retries after serialization failures",
		}),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
