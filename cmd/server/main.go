package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mgiordano/pymebooks/internal/adapter/http"
	"github.com/mgiordano/pymebooks/internal/adapter/http/handler"
	"github.com/mgiordano/pymebooks/internal/adapter/http/middleware"
	postgresRepo "github.com/mgiordano/pymebooks/internal/adapter/repository/postgres"
	redisRepo "github.com/mgiordano/pymebooks/internal/adapter/repository/redis"
	"github.com/mgiordano/pymebooks/internal/infrastructure/config"
	"github.com/mgiordano/pymebooks/internal/infrastructure/logger"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
	"github.com/mgiordano/pymebooks/internal/infrastructure/postgres"
	"github.com/mgiordano/pymebooks/internal/infrastructure/redis"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

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
	clientRepo := postgresRepo.NewClientRepository(pool)
	articleRepo := postgresRepo.NewArticleRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	purchaseRepo := postgresRepo.NewPurchaseRepository(pool)
	deliveryNoteRepo := postgresRepo.NewDeliveryNoteRepository(pool)
	quoteRepo := postgresRepo.NewQuoteRepository(pool)
	noteRepo := postgresRepo.NewNoteRepository(pool)
	receiptRepo := postgresRepo.NewReceiptRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	m := metrics.New()

	// Initialize use cases
	clientUC := usecase.NewClientUseCase(clientRepo, idGen)
	articleUC := usecase.NewArticleUseCase(articleRepo, idGen)
	orderUC := usecase.NewOrderUseCase(orderRepo, clientRepo, settingsRepo, idGen)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, movementRepo, clientRepo,
		settingsRepo, cache, idGen, m, appLogger).WithRetrier(retrier)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, settingsRepo, idGen)
	deliveryNoteUC := usecase.NewDeliveryNoteUseCase(deliveryNoteRepo, orderRepo, clientRepo, idGen)
	quoteUC := usecase.NewQuoteUseCase(txManager, quoteRepo, orderRepo, clientRepo, settingsRepo, idGen).WithRetrier(retrier)
	noteUC := usecase.NewNoteUseCase(txManager, noteRepo, invoiceRepo, movementRepo, clientRepo,
		settingsRepo, cache, idGen, m, appLogger).WithRetrier(retrier)
	receiptUC := usecase.NewReceiptUseCase(txManager, receiptRepo, invoiceRepo, movementRepo,
		clientRepo, cache, idGen, m, appLogger).WithRetrier(retrier)
	ledgerUC := usecase.NewLedgerUseCase(movementRepo, clientRepo, cache, m, appLogger)
	dashboardUC := usecase.NewDashboardUseCase(invoiceRepo, purchaseRepo, orderRepo, movementRepo, appLogger)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)

	// Initialize middleware
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
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
		RateLimiter:         rateLimiter,
		Logging:             middleware.NewLoggingMiddleware(appLogger),
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
