package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
)

// InvoiceUseCase handles invoice issuing and collection state. Issuing
// an invoice records a debit movement on the client's current account in
// the same database transaction.
type InvoiceUseCase struct {
	txManager    TransactionManager
	invoiceRepo  InvoiceRepository
	movementRepo MovementRepository
	clientRepo   ClientRepository
	settingsRepo SettingsRepository
	cache        Cache
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// WithRetrier makes ledger writes retry on transient database errors.
func (uc *InvoiceUseCase) WithRetrier(r Retrier) *InvoiceUseCase {
	uc.retrier = r
	return uc
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	movementRepo MovementRepository,
	clientRepo ClientRepository,
	settingsRepo SettingsRepository,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txManager:    txManager,
		invoiceRepo:  invoiceRepo,
		movementRepo: movementRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
		logger:       logger,
	}
}

// CreateInvoiceInput represents input for issuing an invoice.
type CreateInvoiceInput struct {
	Number   string
	OrderID  string
	ClientID string
	Items    []domain.LineItem
	TaxRate  *decimal.Decimal // nil means use the configured default IVA
	IssuedAt time.Time
	DueAt    time.Time
	Notes    string
}

// CreateInvoice issues an invoice and records the matching debit
// movement atomically.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if input.Number == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}
	if err := domain.ValidateLineItems(input.Items); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	taxRate, err := uc.resolveTaxRate(ctx, input.TaxRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issuedAt := input.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}

	invoice := &domain.Invoice{
		ID:         uc.idGen.Generate(),
		Number:     input.Number,
		OrderID:    input.OrderID,
		ClientID:   client.ID,
		ClientName: client.Name,
		Items:      input.Items,
		Totals:     domain.ComputeTotals(input.Items, taxRate),
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		IssuedAt:   issuedAt,
		DueAt:      input.DueAt,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	movement := &domain.Movement{
		ID:             uc.idGen.Generate(),
		ClientID:       client.ID,
		Date:           issuedAt,
		Kind:           domain.MovementInvoice,
		DocumentNumber: invoice.Number,
		Description:    "invoice issued",
		Debit:          invoice.Totals.Total,
		Credit:         decimal.Zero,
		CreatedAt:      now,
	}

	err = withTransaction(ctx, uc.txManager, uc.retrier, func(tx Transaction) error {
		if err := uc.invoiceRepo.CreateTx(ctx, tx, invoice); err != nil {
			return err
		}
		return uc.movementRepo.CreateTx(ctx, tx, movement)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, client.ID)
	uc.metrics.InvoicesCreated.Inc()
	uc.metrics.MovementsRecorded.WithLabelValues(string(domain.MovementInvoice)).Inc()
	uc.logger.Info().
		Str("invoice_id", invoice.ID).
		Str("client_id", client.ID).
		Str("total", invoice.Totals.Total.String()).
		Msg("invoice issued")

	return invoice, nil
}

// GetInvoice retrieves an invoice with its status derived at read time.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Status = invoice.DeriveStatus(time.Now().UTC())
	return invoice, nil
}

// ListInvoices lists invoices with pagination, statuses derived.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	limit, offset = clampPage(limit, offset)
	invoices, err := uc.invoiceRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, inv := range invoices {
		inv.Status = inv.DeriveStatus(now)
	}
	return invoices, nil
}

// RegisterPaymentInput represents a direct payment against one invoice.
type RegisterPaymentInput struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// RegisterPayment marks money received against a single invoice without
// issuing a receipt. The payment still hits the ledger as a credit.
func (uc *InvoiceUseCase) RegisterPayment(ctx context.Context, input RegisterPaymentInput) (*domain.Invoice, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice.AmountPaid = invoice.AmountPaid.Add(input.Amount)
	var paidAt *time.Time
	if invoice.AmountPaid.GreaterThanOrEqual(invoice.Totals.Total) {
		paidAt = &now
		invoice.PaidAt = paidAt
	}
	invoice.Status = invoice.DeriveStatus(now)

	movement := &domain.Movement{
		ID:             uc.idGen.Generate(),
		ClientID:       invoice.ClientID,
		Date:           now,
		Kind:           domain.MovementPayment,
		DocumentNumber: invoice.Number,
		Description:    "payment on invoice",
		Debit:          decimal.Zero,
		Credit:         input.Amount,
		CreatedAt:      now,
	}

	err = withTransaction(ctx, uc.txManager, uc.retrier, func(tx Transaction) error {
		if err := uc.invoiceRepo.UpdatePaidTx(ctx, tx, invoice.ID, invoice.AmountPaid, invoice.Status, paidAt); err != nil {
			return err
		}
		return uc.movementRepo.CreateTx(ctx, tx, movement)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, invoice.ClientID)
	uc.metrics.MovementsRecorded.WithLabelValues(string(domain.MovementPayment)).Inc()

	return invoice, nil
}

func (uc *InvoiceUseCase) resolveTaxRate(ctx context.Context, rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate != nil {
		if rate.IsNegative() {
			return decimal.Zero, domain.ErrInvalidAmount
		}
		return *rate, nil
	}

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return settings.DefaultTaxRate, nil
}

func (uc *InvoiceUseCase) invalidateAccount(ctx context.Context, clientID string) {
	if err := uc.cache.Delete(ctx, accountCacheKey(clientID)); err != nil {
		uc.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to invalidate account cache")
	}
}
