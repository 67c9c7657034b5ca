package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgiordano/pymebooks/internal/adapter/http/handler"
	apimiddleware "github.com/mgiordano/pymebooks/internal/adapter/http/middleware"
	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
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
	rl := apimiddleware.NewRateLimiter(1, 1)
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
	}))

	body := `{"name":"Acme SRL"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/", strings.NewReader(body))
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
		"POST /api/v1/clients/",
		"GET /api/v1/clients/{id}/account",
		"POST /api/v1/invoices/",
		"POST /api/v1/invoices/{id}/payments",
		"POST /api/v1/receipts/",
		"POST /api/v1/quotes/{id}/convert",
		"POST /api/v1/purchases/{id}/pay",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/summary",
		"GET /api/v1/dashboard",
		"PUT /api/v1/settings/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		ClientHandler:       handler.NewClientHandler(&stubClientService{}),
		ArticleHandler:      handler.NewArticleHandler(nil),
		OrderHandler:        handler.NewOrderHandler(nil),
		InvoiceHandler:      handler.NewInvoiceHandler(nil),
		PurchaseHandler:     handler.NewPurchaseHandler(nil),
		DeliveryNoteHandler: handler.NewDeliveryNoteHandler(nil),
		QuoteHandler:        handler.NewQuoteHandler(nil),
		NoteHandler:         handler.NewNoteHandler(nil),
		ReceiptHandler:      handler.NewReceiptHandler(nil),
		AccountHandler:      handler.NewAccountHandler(nil),
		DashboardHandler:    handler.NewDashboardHandler(nil),
		SettingsHandler:     handler.NewSettingsHandler(nil),
		HealthHandler:       &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubClientService struct{}

func (stubClientService) CreateClient(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
	return &domain.Client{ID: "c1", Name: input.Name}, nil
}

func (stubClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return &domain.Client{ID: id}, nil
}

func (stubClientService) UpdateClient(ctx context.Context, id string, input usecase.UpdateClientInput) (*domain.Client, error) {
	return &domain.Client{ID: id}, nil
}

func (stubClientService) DeleteClient(ctx context.Context, id string) error {
	return nil
}

func (stubClientService) ListClients(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	return []*domain.Client{}, nil
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
