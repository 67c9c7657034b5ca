package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// OrderUseCase handles sales orders.
type OrderUseCase struct {
	orderRepo    OrderRepository
	clientRepo   ClientRepository
	settingsRepo SettingsRepository
	idGen        IDGenerator
}

// NewOrderUseCase creates a new OrderUseCase.
func NewOrderUseCase(orderRepo OrderRepository, clientRepo ClientRepository, settingsRepo SettingsRepository, idGen IDGenerator) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:    orderRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		idGen:        idGen,
	}
}

// CreateOrderInput represents input for creating an order.
type CreateOrderInput struct {
	Number     string
	ClientID   string
	Items      []domain.LineItem
	TaxRate    *decimal.Decimal
	OrderedAt  time.Time
	DeliveryAt *time.Time
	Notes      string
}

// CreateOrder validates and persists a new order.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
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
	orderedAt := input.OrderedAt
	if orderedAt.IsZero() {
		orderedAt = now
	}

	order := &domain.Order{
		ID:         uc.idGen.Generate(),
		Number:     input.Number,
		ClientID:   client.ID,
		ClientName: client.Name,
		Items:      input.Items,
		Totals:     domain.ComputeTotals(input.Items, taxRate),
		Status:     domain.OrderPending,
		OrderedAt:  orderedAt,
		DeliveryAt: input.DeliveryAt,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// UpdateOrderStatus moves an order through its lifecycle.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %s is cancelled", domain.ErrInvalidStatus, id)
	}

	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = now
	return order, nil
}

// ListOrders lists orders with pagination.
func (uc *OrderUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	limit, offset = clampPage(limit, offset)
	return uc.orderRepo.List(ctx, limit, offset)
}
