package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
)

// ReceiptUseCase handles payment collection. A receipt records a credit
// movement on the client's account and allocates the collected amount
// across the applied invoices, oldest due date first.
type ReceiptUseCase struct {
	txManager    TransactionManager
	receiptRepo  ReceiptRepository
	invoiceRepo  InvoiceRepository
	movementRepo MovementRepository
	clientRepo   ClientRepository
	cache        Cache
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// WithRetrier makes ledger writes retry on transient database errors.
func (uc *ReceiptUseCase) WithRetrier(r Retrier) *ReceiptUseCase {
	uc.retrier = r
	return uc
}

// NewReceiptUseCase creates a new ReceiptUseCase.
func NewReceiptUseCase(
	txManager TransactionManager,
	receiptRepo ReceiptRepository,
	invoiceRepo InvoiceRepository,
	movementRepo MovementRepository,
	clientRepo ClientRepository,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txManager:    txManager,
		receiptRepo:  receiptRepo,
		invoiceRepo:  invoiceRepo,
		movementRepo: movementRepo,
		clientRepo:   clientRepo,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
		logger:       logger,
	}
}

// CreateReceiptInput represents input for collecting a payment.
type CreateReceiptInput struct {
	Number          string
	ClientID        string
	Amount          decimal.Decimal
	Method          domain.PaymentMethod
	AppliedInvoices []string
	ReceivedAt      time.Time
	Notes           string
}

// CreateReceipt persists the receipt, the credit movement, and the
// invoice allocations in one transaction. When no invoices are named,
// the amount is allocated across the client's invoices automatically,
// oldest due date first.
func (uc *ReceiptUseCase) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*domain.Receipt, error) {
	if input.Number == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Method == "" {
		input.Method = domain.PaymentCash
	}
	if !input.Method.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", input.Method)
	}

	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	autoAllocate := len(input.AppliedInvoices) == 0

	var invoices []*domain.Invoice
	if autoAllocate {
		// Nothing named: settle the client's invoices oldest due first.
		invoices, err = uc.invoiceRepo.ListByClient(ctx, client.ID)
		if err != nil {
			return nil, err
		}
	} else {
		// Load the applied invoices up front so a bad reference fails
		// before anything is written.
		invoices = make([]*domain.Invoice, 0, len(input.AppliedInvoices))
		for _, invoiceID := range input.AppliedInvoices {
			invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
			if err != nil {
				return nil, err
			}
			if invoice.ClientID != client.ID {
				return nil, fmt.Errorf("%w: invoice %s belongs to another client", domain.ErrMixedClients, invoiceID)
			}
			invoices = append(invoices, invoice)
		}
		sort.SliceStable(invoices, func(i, j int) bool {
			return invoices[i].DueAt.Before(invoices[j].DueAt)
		})
	}

	now := time.Now().UTC()
	receivedAt := input.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = now
	}

	// Plan the allocations before anything is written so a retried
	// transaction replays the same amounts.
	remaining := input.Amount
	allocated := make([]*domain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if !remaining.IsPositive() {
			break
		}
		applied := decimal.Min(remaining, invoice.Outstanding())
		if !applied.IsPositive() {
			continue
		}
		invoice.AmountPaid = invoice.AmountPaid.Add(applied)
		remaining = remaining.Sub(applied)
		allocated = append(allocated, invoice)
	}

	appliedIDs := input.AppliedInvoices
	if autoAllocate {
		appliedIDs = make([]string, 0, len(allocated))
		for _, invoice := range allocated {
			appliedIDs = append(appliedIDs, invoice.ID)
		}
	}

	receipt := &domain.Receipt{
		ID:              uc.idGen.Generate(),
		Number:          input.Number,
		ClientID:        client.ID,
		ClientName:      client.Name,
		Amount:          input.Amount,
		Method:          input.Method,
		AppliedInvoices: appliedIDs,
		ReceivedAt:      receivedAt,
		Notes:           input.Notes,
		CreatedAt:       now,
	}

	movement := &domain.Movement{
		ID:             uc.idGen.Generate(),
		ClientID:       client.ID,
		Date:           receivedAt,
		Kind:           domain.MovementPayment,
		DocumentNumber: receipt.Number,
		Description:    "receipt",
		Debit:          decimal.Zero,
		Credit:         input.Amount,
		CreatedAt:      now,
	}

	err = withTransaction(ctx, uc.txManager, uc.retrier, func(tx Transaction) error {
		if err := uc.receiptRepo.CreateTx(ctx, tx, receipt); err != nil {
			return err
		}
		if err := uc.movementRepo.CreateTx(ctx, tx, movement); err != nil {
			return err
		}

		for _, invoice := range allocated {
			var paidAt *time.Time
			status := invoice.DeriveStatus(now)
			if status == domain.InvoicePaid {
				paidAt = &now
			}
			if err := uc.invoiceRepo.UpdatePaidTx(ctx, tx, invoice.ID, invoice.AmountPaid, status, paidAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, client.ID)
	uc.metrics.ReceiptsCreated.Inc()
	uc.metrics.MovementsRecorded.WithLabelValues(string(domain.MovementPayment)).Inc()
	uc.logger.Info().
		Str("receipt_id", receipt.ID).
		Str("client_id", client.ID).
		Str("amount", receipt.Amount.String()).
		Int("invoices_applied", len(allocated)).
		Msg("receipt collected")

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	return uc.receiptRepo.GetByID(ctx, id)
}

// ListReceipts lists receipts with pagination.
func (uc *ReceiptUseCase) ListReceipts(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	limit, offset = clampPage(limit, offset)
	return uc.receiptRepo.List(ctx, limit, offset)
}

func (uc *ReceiptUseCase) invalidateAccount(ctx context.Context, clientID string) {
	if err := uc.cache.Delete(ctx, accountCacheKey(clientID)); err != nil {
		uc.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to invalidate account cache")
	}
}
