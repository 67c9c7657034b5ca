package usecase

import (
	"context"
	"time"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// ClientUseCase handles client registry logic.
type ClientUseCase struct {
	clientRepo ClientRepository
	idGen      IDGenerator
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, idGen IDGenerator) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		idGen:      idGen,
	}
}

// CreateClientInput represents input for creating a client.
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// CreateClient validates and persists a new client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	if err := domain.ValidateClientName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidateTaxID(input.TaxID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		TaxID:     input.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// UpdateClientInput represents input for updating a client. Nil fields
// keep their stored value.
type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
}

// UpdateClient applies a partial update to a client.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateClientName(*input.Name); err != nil {
			return nil, err
		}
		client.Name = *input.Name
	}
	if input.Email != nil {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.TaxID != nil {
		if err := domain.ValidateTaxID(*input.TaxID); err != nil {
			return nil, err
		}
		client.TaxID = *input.TaxID
	}
	client.UpdatedAt = time.Now().UTC()

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient removes a client from the registry. Movements already
// recorded for the client are kept; the ledger is insert-only.
func (uc *ClientUseCase) DeleteClient(ctx context.Context, id string) error {
	if _, err := uc.clientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.clientRepo.Delete(ctx, id)
}

// ListClients lists clients with pagination.
func (uc *ClientUseCase) ListClients(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	limit, offset = clampPage(limit, offset)
	return uc.clientRepo.List(ctx, limit, offset)
}
