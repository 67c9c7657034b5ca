package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
	"github.com/mgiordano/pymebooks/internal/usecase/mocks"
)

func TestSettingsUseCase_GetSettings_FallsBackToDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSettingsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(nil, domain.ErrSettingsNotFound)

	uc := usecase.NewSettingsUseCase(repo)

	settings, err := uc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.Currency != "ARS" {
		t.Errorf("expected ARS default currency, got %q", settings.Currency)
	}
	if !settings.DefaultTaxRate.Equal(decimal.NewFromInt(21)) {
		t.Errorf("expected 21%% default tax rate, got %s", settings.DefaultTaxRate)
	}
	if !settings.AutoNumbering {
		t.Error("expected auto numbering on by default")
	}
}

func TestSettingsUseCase_UpdateSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSettingsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(&domain.Settings{
		CompanyName:    "Old Name",
		Currency:       "ARS",
		DefaultTaxRate: decimal.NewFromInt(21),
	}, nil)

	var saved *domain.Settings
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Settings) error {
			saved = s
			return nil
		})

	uc := usecase.NewSettingsUseCase(repo)

	name := "Distribuidora San Martin"
	rate := decimal.NewFromFloat(10.5)
	settings, err := uc.UpdateSettings(context.Background(), usecase.UpdateSettingsInput{
		CompanyName:    &name,
		DefaultTaxRate: &rate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if settings.CompanyName != name {
		t.Errorf("expected company name updated, got %q", settings.CompanyName)
	}
	if !settings.DefaultTaxRate.Equal(rate) {
		t.Errorf("expected tax rate 10.5, got %s", settings.DefaultTaxRate)
	}
	if settings.Currency != "ARS" {
		t.Errorf("expected currency untouched, got %q", settings.Currency)
	}
	if saved == nil {
		t.Fatal("expected settings to be saved")
	}
}

func TestSettingsUseCase_UpdateSettings_RejectsNegativeRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSettingsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(&domain.Settings{DefaultTaxRate: decimal.NewFromInt(21)}, nil)

	uc := usecase.NewSettingsUseCase(repo)

	rate := decimal.NewFromInt(-1)
	if _, err := uc.UpdateSettings(context.Background(), usecase.UpdateSettingsInput{DefaultTaxRate: &rate}); err == nil {
		t.Fatal("expected error for negative tax rate")
	}
}
