package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
	"github.com/mgiordano/pymebooks/internal/usecase"
	"github.com/mgiordano/pymebooks/internal/usecase/mocks"
)

type invoiceMocks struct {
	txManager    *mocks.MockTransactionManager
	tx           *mocks.MockTransaction
	invoiceRepo  *mocks.MockInvoiceRepository
	movementRepo *mocks.MockMovementRepository
	clientRepo   *mocks.MockClientRepository
	settingsRepo *mocks.MockSettingsRepository
	cache        *mocks.MockCache
	idGen        *mocks.MockIDGenerator
}

func newInvoiceMocks(ctrl *gomock.Controller) invoiceMocks {
	return invoiceMocks{
		txManager:    mocks.NewMockTransactionManager(ctrl),
		tx:           mocks.NewMockTransaction(ctrl),
		invoiceRepo:  mocks.NewMockInvoiceRepository(ctrl),
		movementRepo: mocks.NewMockMovementRepository(ctrl),
		clientRepo:   mocks.NewMockClientRepository(ctrl),
		settingsRepo: mocks.NewMockSettingsRepository(ctrl),
		cache:        mocks.NewMockCache(ctrl),
		idGen:        mocks.NewMockIDGenerator(ctrl),
	}
}

func (m invoiceMocks) useCase() *usecase.InvoiceUseCase {
	return usecase.NewInvoiceUseCase(
		m.txManager, m.invoiceRepo, m.movementRepo, m.clientRepo,
		m.settingsRepo, m.cache, m.idGen, metrics.NewNop(), zerolog.Nop(),
	)
}

func TestInvoiceUseCase_CreateInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newInvoiceMocks(ctrl)

	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)
	m.settingsRepo.EXPECT().Get(gomock.Any()).Return(&domain.Settings{DefaultTaxRate: decimal.NewFromInt(21)}, nil)
	m.idGen.EXPECT().Generate().Return("inv-1")
	m.idGen.EXPECT().Generate().Return("mov-1")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.invoiceRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)

	var recorded *domain.Movement
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, mv *domain.Movement) error {
			recorded = mv
			return nil
		})
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), "account:c1").Return(nil)

	invoice, err := m.useCase().CreateInvoice(context.Background(), usecase.CreateInvoiceInput{
		Number:   "FC-0001",
		ClientID: "c1",
		Items: []domain.LineItem{
			{Description: "consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
		},
		DueAt: time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 + 21% IVA from settings.
	if !invoice.Totals.Total.Equal(decimal.NewFromInt(1210)) {
		t.Errorf("expected total 1210, got %s", invoice.Totals.Total)
	}
	if invoice.Status != domain.InvoicePending {
		t.Errorf("expected pending status, got %s", invoice.Status)
	}
	if recorded == nil {
		t.Fatal("expected a movement to be recorded")
	}
	if recorded.Kind != domain.MovementInvoice {
		t.Errorf("expected invoice movement, got %s", recorded.Kind)
	}
	if !recorded.Debit.Equal(invoice.Totals.Total) || !recorded.Credit.IsZero() {
		t.Errorf("expected debit %s / credit 0, got %s / %s", invoice.Totals.Total, recorded.Debit, recorded.Credit)
	}
}

func TestInvoiceUseCase_CreateInvoice_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateInvoiceInput
		wantErr error
	}{
		{
			name: "empty number",
			input: usecase.CreateInvoiceInput{
				ClientID: "c1",
				Items:    []domain.LineItem{{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)}},
			},
			wantErr: domain.ErrEmptyDocumentNumber,
		},
		{
			name:    "no line items",
			input:   usecase.CreateInvoiceInput{Number: "FC-0001", ClientID: "c1"},
			wantErr: domain.ErrNoLineItems,
		},
		{
			name: "negative unit price",
			input: usecase.CreateInvoiceInput{
				Number:   "FC-0001",
				ClientID: "c1",
				Items:    []domain.LineItem{{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-10)}},
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newInvoiceMocks(ctrl)
			_, err := m.useCase().CreateInvoice(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInvoiceUseCase_CreateInvoice_RollsBackOnMovementError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newInvoiceMocks(ctrl)

	taxRate := decimal.NewFromInt(21)
	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)
	m.idGen.EXPECT().Generate().Return("inv-1")
	m.idGen.EXPECT().Generate().Return("mov-1")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.invoiceRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(errors.New("insert failed"))
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	_, err := m.useCase().CreateInvoice(context.Background(), usecase.CreateInvoiceInput{
		Number:   "FC-0002",
		ClientID: "c1",
		TaxRate:  &taxRate,
		Items:    []domain.LineItem{{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestInvoiceUseCase_GetInvoice_DerivesOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newInvoiceMocks(ctrl)

	m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&domain.Invoice{
		ID:         "inv-1",
		ClientID:   "c1",
		Totals:     domain.Totals{Total: decimal.NewFromInt(1000)},
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueAt:      time.Now().AddDate(0, 0, -5),
	}, nil)

	invoice, err := m.useCase().GetInvoice(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Status != domain.InvoiceOverdue {
		t.Errorf("expected overdue, got %s", invoice.Status)
	}
}

func TestInvoiceUseCase_RegisterPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newInvoiceMocks(ctrl)

	m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(&domain.Invoice{
		ID:         "inv-1",
		Number:     "FC-0001",
		ClientID:   "c1",
		Totals:     domain.Totals{Total: decimal.NewFromInt(1000)},
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueAt:      time.Now().AddDate(0, 1, 0),
	}, nil)
	m.idGen.EXPECT().Generate().Return("mov-2")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)

	m.invoiceRepo.EXPECT().UpdatePaidTx(gomock.Any(), m.tx, "inv-1", gomock.Any(), domain.InvoicePartiallyPaid, nil).Return(nil)

	var recorded *domain.Movement
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, mv *domain.Movement) error {
			recorded = mv
			return nil
		})
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), "account:c1").Return(nil)

	invoice, err := m.useCase().RegisterPayment(context.Background(), usecase.RegisterPaymentInput{
		InvoiceID: "inv-1",
		Amount:    decimal.NewFromInt(400),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if invoice.Status != domain.InvoicePartiallyPaid {
		t.Errorf("expected partially_paid, got %s", invoice.Status)
	}
	if !invoice.AmountPaid.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected amount paid 400, got %s", invoice.AmountPaid)
	}
	if recorded == nil || recorded.Kind != domain.MovementPayment {
		t.Fatalf("expected a payment movement, got %+v", recorded)
	}
	if !recorded.Credit.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected credit 400, got %s", recorded.Credit)
	}
}

func TestInvoiceUseCase_RegisterPayment_RejectsNonPositive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newInvoiceMocks(ctrl)

	_, err := m.useCase().RegisterPayment(context.Background(), usecase.RegisterPaymentInput{
		InvoiceID: "inv-1",
		Amount:    decimal.Zero,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
