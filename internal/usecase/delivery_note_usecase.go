package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// DeliveryNoteUseCase handles delivery notes (remitos).
type DeliveryNoteUseCase struct {
	deliveryRepo DeliveryNoteRepository
	orderRepo    OrderRepository
	clientRepo   ClientRepository
	idGen        IDGenerator
}

// NewDeliveryNoteUseCase creates a new DeliveryNoteUseCase.
func NewDeliveryNoteUseCase(deliveryRepo DeliveryNoteRepository, orderRepo OrderRepository, clientRepo ClientRepository, idGen IDGenerator) *DeliveryNoteUseCase {
	return &DeliveryNoteUseCase{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		clientRepo:   clientRepo,
		idGen:        idGen,
	}
}

// CreateDeliveryNoteInput represents input for issuing a delivery note.
type CreateDeliveryNoteInput struct {
	Number    string
	OrderID   string
	InvoiceID string
	ClientID  string
	Items     []domain.LineItem
	Carrier   string
	IssuedAt  time.Time
	Notes     string
}

// CreateDeliveryNote validates the referenced order and persists the note.
func (uc *DeliveryNoteUseCase) CreateDeliveryNote(ctx context.Context, input CreateDeliveryNoteInput) (*domain.DeliveryNote, error) {
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

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != client.ID {
		return nil, fmt.Errorf("%w: order %s belongs to another client", domain.ErrMixedClients, input.OrderID)
	}

	now := time.Now().UTC()
	issuedAt := input.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}

	note := &domain.DeliveryNote{
		ID:         uc.idGen.Generate(),
		Number:     input.Number,
		OrderID:    order.ID,
		InvoiceID:  input.InvoiceID,
		ClientID:   client.ID,
		ClientName: client.Name,
		Items:      input.Items,
		Carrier:    input.Carrier,
		Status:     domain.DeliveryPending,
		IssuedAt:   issuedAt,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.deliveryRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// GetDeliveryNote retrieves a delivery note by ID.
func (uc *DeliveryNoteUseCase) GetDeliveryNote(ctx context.Context, id string) (*domain.DeliveryNote, error) {
	return uc.deliveryRepo.GetByID(ctx, id)
}

// UpdateDeliveryStatus moves a note through pending/in_transit/delivered.
// Reaching delivered stamps the delivery time.
func (uc *DeliveryNoteUseCase) UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.DeliveryNote, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	note, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var deliveredAt *time.Time
	if status == domain.DeliveryDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	if err := uc.deliveryRepo.UpdateStatus(ctx, id, status, deliveredAt); err != nil {
		return nil, err
	}

	note.Status = status
	note.DeliveredAt = deliveredAt
	return note, nil
}

// ListDeliveryNotes lists delivery notes with pagination.
func (uc *DeliveryNoteUseCase) ListDeliveryNotes(ctx context.Context, limit, offset int) ([]*domain.DeliveryNote, error) {
	limit, offset = clampPage(limit, offset)
	return uc.deliveryRepo.List(ctx, limit, offset)
}
