package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Client, error)
}

// ArticleRepository defines data access for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Article, error)
}

// MovementRepository defines data access for ledger movements.
// Movements are insert-only; the account projection is recomputed from
// them on every read.
type MovementRepository interface {
	CreateTx(ctx context.Context, tx Transaction, movement *domain.Movement) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Movement, error)
	ListAll(ctx context.Context) ([]domain.Movement, error)
}

// OrderRepository defines data access for sales orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateTx(ctx context.Context, tx Transaction, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	CreateTx(ctx context.Context, tx Transaction, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	UpdatePaidTx(ctx context.Context, tx Transaction, id string, amountPaid decimal.Decimal, status domain.InvoiceStatus, paidAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error)
}

// PurchaseRepository defines data access for purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Purchase, error)
}

// DeliveryNoteRepository defines data access for delivery notes.
type DeliveryNoteRepository interface {
	Create(ctx context.Context, note *domain.DeliveryNote) error
	GetByID(ctx context.Context, id string) (*domain.DeliveryNote, error)
	UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus, deliveredAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.DeliveryNote, error)
}

// QuoteRepository defines data access for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, updatedAt time.Time) error
	// MarkConvertedTx flips an accepted quote to converted inside the
	// conversion transaction. It fails with ErrQuoteNotConvertible when
	// the quote is no longer accepted, so two concurrent conversions
	// cannot both succeed.
	MarkConvertedTx(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Quote, error)
}

// NoteRepository defines data access for credit and debit notes.
type NoteRepository interface {
	CreateTx(ctx context.Context, tx Transaction, note *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Note, error)
}

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	CreateTx(ctx context.Context, tx Transaction, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id string) (*domain.Receipt, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
}

// SettingsRepository defines data access for the settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for computed projections.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
