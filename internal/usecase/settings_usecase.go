package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// SettingsUseCase handles the single business-wide settings row.
type SettingsUseCase struct {
	settingsRepo SettingsRepository
}

// NewSettingsUseCase creates a new SettingsUseCase.
func NewSettingsUseCase(settingsRepo SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settingsRepo: settingsRepo}
}

// GetSettings returns the current settings, falling back to defaults
// when nothing has been saved yet.
func (uc *SettingsUseCase) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettingsInput carries the fields to change. Nil pointers leave
// the current value untouched.
type UpdateSettingsInput struct {
	CompanyName    *string
	CompanyTaxID   *string
	CompanyAddress *string
	CompanyEmail   *string
	CompanyPhone   *string
	Currency       *string
	DefaultTaxRate *decimal.Decimal
	AutoNumbering  *bool
}

// UpdateSettings applies a partial update and persists the result.
func (uc *SettingsUseCase) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.Settings, error) {
	settings, err := uc.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.CompanyTaxID != nil {
		if err := domain.ValidateTaxID(*input.CompanyTaxID); err != nil {
			return nil, err
		}
		settings.CompanyTaxID = *input.CompanyTaxID
	}
	if input.CompanyAddress != nil {
		settings.CompanyAddress = *input.CompanyAddress
	}
	if input.CompanyEmail != nil {
		if err := domain.ValidateEmail(*input.CompanyEmail); err != nil {
			return nil, err
		}
		settings.CompanyEmail = *input.CompanyEmail
	}
	if input.CompanyPhone != nil {
		settings.CompanyPhone = *input.CompanyPhone
	}
	if input.Currency != nil {
		if *input.Currency == "" {
			return nil, fmt.Errorf("currency cannot be empty")
		}
		settings.Currency = *input.Currency
	}
	if input.DefaultTaxRate != nil {
		if input.DefaultTaxRate.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		settings.DefaultTaxRate = *input.DefaultTaxRate
	}
	if input.AutoNumbering != nil {
		settings.AutoNumbering = *input.AutoNumbering
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
