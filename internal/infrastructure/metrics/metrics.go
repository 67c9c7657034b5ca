package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Document metrics
	InvoicesCreated prometheus.Counter
	ReceiptsCreated prometheus.Counter
	NotesCreated    *prometheus.CounterVec

	// Ledger metrics
	MovementsRecorded *prometheus.CounterVec
	AccountsComputed  prometheus.Counter
	AccountCacheHits  prometheus.Counter
	AccountCacheMiss  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		InvoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pymebooks_invoices_created_total",
			Help: "Total number of invoices issued",
		}),
		ReceiptsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pymebooks_receipts_created_total",
			Help: "Total number of receipts collected",
		}),
		NotesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pymebooks_notes_created_total",
				Help: "Total number of credit/debit notes created",
			},
			[]string{"kind"},
		),
		MovementsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pymebooks_movements_recorded_total",
				Help: "Total number of ledger movements recorded",
			},
			[]string{"kind"},
		),
		AccountsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pymebooks_accounts_computed_total",
			Help: "Total number of current-account projections computed",
		}),
		AccountCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pymebooks_account_cache_hits_total",
			Help: "Account projections served from cache",
		}),
		AccountCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pymebooks_account_cache_misses_total",
			Help: "Account projections recomputed on cache miss",
		}),
	}
}

// NewNop creates metrics bound to a private registry, for tests.
func NewNop() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		InvoicesCreated: factory.NewCounter(prometheus.CounterOpts{Name: "pymebooks_invoices_created_total"}),
		ReceiptsCreated: factory.NewCounter(prometheus.CounterOpts{Name: "pymebooks_receipts_created_total"}),
		NotesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{Name: "pymebooks_notes_created_total"}, []string{"kind"}),
		MovementsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{Name: "pymebooks_movements_recorded_total"}, []string{"kind"}),
		AccountsComputed: factory.NewCounter(prometheus.CounterOpts{Name: "pymebooks_accounts_computed_total"}),
		AccountCacheHits: factory.NewCounter(prometheus.CounterOpts{Name: "pymebooks_account_cache_hits_total"}),
		AccountCacheMiss: factory.NewCounter(prometheus.CounterOpts{Name: "pymebooks_account_cache_misses_total"}),
	}
}
