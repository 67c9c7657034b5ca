package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// QuoteUseCase handles quotes and their conversion into orders.
type QuoteUseCase struct {
	txManager    TransactionManager
	quoteRepo    QuoteRepository
	orderRepo    OrderRepository
	clientRepo   ClientRepository
	settingsRepo SettingsRepository
	idGen        IDGenerator
	retrier      Retrier
}

// WithRetrier makes quote conversions retry on transient database errors.
func (uc *QuoteUseCase) WithRetrier(r Retrier) *QuoteUseCase {
	uc.retrier = r
	return uc
}

// NewQuoteUseCase creates a new QuoteUseCase.
func NewQuoteUseCase(txManager TransactionManager, quoteRepo QuoteRepository, orderRepo OrderRepository, clientRepo ClientRepository, settingsRepo SettingsRepository, idGen IDGenerator) *QuoteUseCase {
	return &QuoteUseCase{
		txManager:    txManager,
		quoteRepo:    quoteRepo,
		orderRepo:    orderRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		idGen:        idGen,
	}
}

// CreateQuoteInput represents input for creating a quote.
type CreateQuoteInput struct {
	Number       string
	ClientID     string
	Items        []domain.LineItem
	TaxRate      *decimal.Decimal
	ValidityDays int
	IssuedAt     time.Time
	Notes        string
}

// CreateQuote validates and persists a new draft quote.
func (uc *QuoteUseCase) CreateQuote(ctx context.Context, input CreateQuoteInput) (*domain.Quote, error) {
	if input.Number == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}
	if err := domain.ValidateLineItems(input.Items); err != nil {
		return nil, err
	}
	if input.ValidityDays <= 0 {
		input.ValidityDays = 30
	}

	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	taxRate := decimal.Zero
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		taxRate = *input.TaxRate
	} else {
		settings, err := uc.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		taxRate = settings.DefaultTaxRate
	}

	now := time.Now().UTC()
	issuedAt := input.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}

	quote := &domain.Quote{
		ID:           uc.idGen.Generate(),
		Number:       input.Number,
		ClientID:     client.ID,
		ClientName:   client.Name,
		Items:        input.Items,
		Totals:       domain.ComputeTotals(input.Items, taxRate),
		Status:       domain.QuoteDraft,
		ValidityDays: input.ValidityDays,
		IssuedAt:     issuedAt,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// GetQuote retrieves a quote with expiry folded into its status.
func (uc *QuoteUseCase) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Status = quote.EffectiveStatus(time.Now().UTC())
	return quote, nil
}

// UpdateQuoteStatus moves a quote through draft/sent/accepted/rejected.
// Converted is reserved for ConvertToOrder.
func (uc *QuoteUseCase) UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error) {
	if !status.Valid() || status == domain.QuoteConverted {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	quote, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == domain.QuoteConverted {
		return nil, fmt.Errorf("%w: quote %s is already converted", domain.ErrInvalidStatus, id)
	}

	now := time.Now().UTC()
	if err := uc.quoteRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	quote.Status = status
	quote.UpdatedAt = now
	return quote, nil
}

// ConvertToOrderInput carries the order number for a quote conversion.
type ConvertToOrderInput struct {
	QuoteID     string
	OrderNumber string
}

// ConvertToOrder turns an accepted quote into a pending order and marks
// the quote converted. Only accepted, unexpired quotes convert.
func (uc *QuoteUseCase) ConvertToOrder(ctx context.Context, input ConvertToOrderInput) (*domain.Order, error) {
	if input.OrderNumber == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}

	quote, err := uc.quoteRepo.GetByID(ctx, input.QuoteID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !quote.CanConvert(now) {
		return nil, domain.ErrQuoteNotConvertible
	}

	order := &domain.Order{
		ID:         uc.idGen.Generate(),
		Number:     input.OrderNumber,
		ClientID:   quote.ClientID,
		ClientName: quote.ClientName,
		Items:      quote.Items,
		Totals:     quote.Totals,
		Status:     domain.OrderPending,
		OrderedAt:  now,
		QuoteID:    quote.ID,
		Notes:      quote.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// One transaction: either the quote is marked converted and the
	// order exists, or neither. The status flip goes first because its
	// accepted-only guard is what keeps a quote from converting twice.
	err = withTransaction(ctx, uc.txManager, uc.retrier, func(tx Transaction) error {
		if err := uc.quoteRepo.MarkConvertedTx(ctx, tx, quote.ID, now); err != nil {
			return err
		}
		return uc.orderRepo.CreateTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListQuotes lists quotes with pagination, expiry folded in.
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	limit, offset = clampPage(limit, offset)
	quotes, err := uc.quoteRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, q := range quotes {
		q.Status = q.EffectiveStatus(now)
	}
	return quotes, nil
}
