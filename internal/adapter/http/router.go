package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mgiordano/pymebooks/internal/adapter/http/handler"
	"github.com/mgiordano/pymebooks/internal/adapter/http/middleware"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ClientHandler       *handler.ClientHandler
	ArticleHandler      *handler.ArticleHandler
	OrderHandler        *handler.OrderHandler
	InvoiceHandler      *handler.InvoiceHandler
	PurchaseHandler     *handler.PurchaseHandler
	DeliveryNoteHandler *handler.DeliveryNoteHandler
	QuoteHandler        *handler.QuoteHandler
	NoteHandler         *handler.NoteHandler
	ReceiptHandler      *handler.ReceiptHandler
	AccountHandler      *handler.AccountHandler
	DashboardHandler    *handler.DashboardHandler
	SettingsHandler     *handler.SettingsHandler
	HealthHandler       *handler.HealthHandler
	IdempotencyStore    usecase.IdempotencyStore
	RateLimiter         *middleware.RateLimiter
	Logging             *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Post("/", cfg.ClientHandler.Create)
			r.Get("/", cfg.ClientHandler.List)
			r.Get("/{id}", cfg.ClientHandler.Get)
			r.Put("/{id}", cfg.ClientHandler.Update)
			r.Delete("/{id}", cfg.ClientHandler.Delete)
			r.Get("/{id}/account", cfg.AccountHandler.GetClientAccount)
		})

		// Articles
		r.Route("/articles", func(r chi.Router) {
			r.Post("/", cfg.ArticleHandler.Create)
			r.Get("/", cfg.ArticleHandler.List)
			r.Get("/{id}", cfg.ArticleHandler.Get)
			r.Put("/{id}", cfg.ArticleHandler.Update)
			r.Delete("/{id}", cfg.ArticleHandler.Delete)
		})

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Put("/{id}/status", cfg.OrderHandler.UpdateStatus)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", cfg.InvoiceHandler.Create)
			r.Get("/", cfg.InvoiceHandler.List)
			r.Get("/{id}", cfg.InvoiceHandler.Get)
			r.Post("/{id}/payments", cfg.InvoiceHandler.RegisterPayment)
		})

		// Purchases
		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", cfg.PurchaseHandler.Create)
			r.Get("/", cfg.PurchaseHandler.List)
			r.Get("/{id}", cfg.PurchaseHandler.Get)
			r.Post("/{id}/pay", cfg.PurchaseHandler.MarkPaid)
		})

		// Delivery notes
		r.Route("/delivery-notes", func(r chi.Router) {
			r.Post("/", cfg.DeliveryNoteHandler.Create)
			r.Get("/", cfg.DeliveryNoteHandler.List)
			r.Get("/{id}", cfg.DeliveryNoteHandler.Get)
			r.Put("/{id}/status", cfg.DeliveryNoteHandler.UpdateStatus)
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", cfg.QuoteHandler.Create)
			r.Get("/", cfg.QuoteHandler.List)
			r.Get("/{id}", cfg.QuoteHandler.Get)
			r.Put("/{id}/status", cfg.QuoteHandler.UpdateStatus)
			r.Post("/{id}/convert", cfg.QuoteHandler.Convert)
		})

		// Credit and debit notes
		r.Route("/notes", func(r chi.Router) {
			r.Post("/", cfg.NoteHandler.Create)
			r.Get("/", cfg.NoteHandler.List)
			r.Get("/{id}", cfg.NoteHandler.Get)
		})

		// Receipts
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", cfg.ReceiptHandler.Create)
			r.Get("/", cfg.ReceiptHandler.List)
			r.Get("/{id}", cfg.ReceiptHandler.Get)
		})

		// Current accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/summary", cfg.AccountHandler.Summary)
		})

		// Dashboard
		r.Get("/dashboard", cfg.DashboardHandler.Get)

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.Get)
			r.Put("/", cfg.SettingsHandler.Update)
		})
	})

	return r
}
