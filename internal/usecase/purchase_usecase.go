package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// PurchaseUseCase handles supplier purchases. These are expense
// documents only; they never touch client current accounts.
type PurchaseUseCase struct {
	purchaseRepo PurchaseRepository
	settingsRepo SettingsRepository
	idGen        IDGenerator
}

// NewPurchaseUseCase creates a new PurchaseUseCase.
func NewPurchaseUseCase(purchaseRepo PurchaseRepository, settingsRepo SettingsRepository, idGen IDGenerator) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchaseRepo: purchaseRepo,
		settingsRepo: settingsRepo,
		idGen:        idGen,
	}
}

// CreatePurchaseInput represents input for recording a purchase.
type CreatePurchaseInput struct {
	Number   string
	Supplier string
	Category domain.ArticleCategory
	Items    []domain.LineItem
	TaxRate  *decimal.Decimal
	BoughtAt time.Time
	Notes    string
}

// CreatePurchase validates and persists a new purchase.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*domain.Purchase, error) {
	if input.Number == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}
	if input.Supplier == "" {
		return nil, fmt.Errorf("supplier is required")
	}
	if err := domain.ValidateLineItems(input.Items); err != nil {
		return nil, err
	}
	if input.Category == "" {
		input.Category = domain.CategoryGeneral
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("unknown purchase category %q", input.Category)
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
	boughtAt := input.BoughtAt
	if boughtAt.IsZero() {
		boughtAt = now
	}

	purchase := &domain.Purchase{
		ID:        uc.idGen.Generate(),
		Number:    input.Number,
		Supplier:  input.Supplier,
		Category:  input.Category,
		Items:     input.Items,
		Totals:    domain.ComputeTotals(input.Items, taxRate),
		Payment:   domain.PaymentPending,
		BoughtAt:  boughtAt,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	return purchase, nil
}

// GetPurchase retrieves a purchase by ID.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*domain.Purchase, error) {
	return uc.purchaseRepo.GetByID(ctx, id)
}

// MarkPurchasePaid marks a purchase as paid.
func (uc *PurchaseUseCase) MarkPurchasePaid(ctx context.Context, id string) (*domain.Purchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Payment == domain.PaymentDone {
		return purchase, nil
	}

	now := time.Now().UTC()
	if err := uc.purchaseRepo.MarkPaid(ctx, id, now); err != nil {
		return nil, err
	}

	purchase.Payment = domain.PaymentDone
	purchase.PaidAt = &now
	purchase.UpdatedAt = now
	return purchase, nil
}

// ListPurchases lists purchases with pagination.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, limit, offset int) ([]*domain.Purchase, error) {
	limit, offset = clampPage(limit, offset)
	return uc.purchaseRepo.List(ctx, limit, offset)
}
