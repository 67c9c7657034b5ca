package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/mgiordano/pymebooks/internal/adapter/http"
	"github.com/mgiordano/pymebooks/internal/adapter/http/handler"
	"github.com/mgiordano/pymebooks/internal/adapter/repository/postgres"
	redisrepo "github.com/mgiordano/pymebooks/internal/adapter/repository/redis"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
	infraredis "github.com/mgiordano/pymebooks/internal/infrastructure/redis"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	client, err := infraredis.NewClient(context.Background(), redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	return client
}

// newTestRouter wires the full application against a real database and
// redis, mirroring cmd/server.
func newTestRouter(t *testing.T, pool *pgxpool.Pool, redisClient *redis.Client) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	txManager := postgres.NewTxManager(pool)
	clientRepo := postgres.NewClientRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	deliveryNoteRepo := postgres.NewDeliveryNoteRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	m := metrics.NewNop()

	clientUC := usecase.NewClientUseCase(clientRepo, idGen)
	articleUC := usecase.NewArticleUseCase(articleRepo, idGen)
	orderUC := usecase.NewOrderUseCase(orderRepo, clientRepo, settingsRepo, idGen)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, movementRepo, clientRepo,
		settingsRepo, cache, idGen, m, logger).WithRetrier(retrier)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, settingsRepo, idGen)
	deliveryNoteUC := usecase.NewDeliveryNoteUseCase(deliveryNoteRepo, orderRepo, clientRepo, idGen)
	quoteUC := usecase.NewQuoteUseCase(txManager, quoteRepo, orderRepo, clientRepo, settingsRepo, idGen).WithRetrier(retrier)
	noteUC := usecase.NewNoteUseCase(txManager, noteRepo, invoiceRepo, movementRepo, clientRepo,
		settingsRepo, cache, idGen, m, logger).WithRetrier(retrier)
	receiptUC := usecase.NewReceiptUseCase(txManager, receiptRepo, invoiceRepo, movementRepo,
		clientRepo, cache, idGen, m, logger).WithRetrier(retrier)
	ledgerUC := usecase.NewLedgerUseCase(movementRepo, clientRepo, cache, m, logger)
	dashboardUC := usecase.NewDashboardUseCase(invoiceRepo, purchaseRepo, orderRepo, movementRepo, logger)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ClientHandler:       handler.NewClientHandler(clientUC),
		ArticleHandler:      handler.NewArticleHandler(articleUC),
		OrderHandler:        handler.NewOrderHandler(orderUC),
		InvoiceHandler:      handler.NewInvoiceHandler(invoiceUC),
		PurchaseHandler:     handler.NewPurchaseHandler(purchaseUC),
		DeliveryNoteHandler: handler.NewDeliveryNoteHandler(deliveryNoteUC),
		QuoteHandler:        handler.NewQuoteHandler(quoteUC),
		NoteHandler:         handler.NewNoteHandler(noteUC),
		ReceiptHandler:      handler.NewReceiptHandler(receiptUC),
		AccountHandler:      handler.NewAccountHandler(ledgerUC),
		DashboardHandler:    handler.NewDashboardHandler(dashboardUC),
		SettingsHandler:     handler.NewSettingsHandler(settingsUC),
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:    idempotencyStore,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, &body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
