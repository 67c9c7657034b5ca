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

type receiptMocks struct {
	txManager    *mocks.MockTransactionManager
	tx           *mocks.MockTransaction
	receiptRepo  *mocks.MockReceiptRepository
	invoiceRepo  *mocks.MockInvoiceRepository
	movementRepo *mocks.MockMovementRepository
	clientRepo   *mocks.MockClientRepository
	cache        *mocks.MockCache
	idGen        *mocks.MockIDGenerator
}

func newReceiptMocks(ctrl *gomock.Controller) receiptMocks {
	return receiptMocks{
		txManager:    mocks.NewMockTransactionManager(ctrl),
		tx:           mocks.NewMockTransaction(ctrl),
		receiptRepo:  mocks.NewMockReceiptRepository(ctrl),
		invoiceRepo:  mocks.NewMockInvoiceRepository(ctrl),
		movementRepo: mocks.NewMockMovementRepository(ctrl),
		clientRepo:   mocks.NewMockClientRepository(ctrl),
		cache:        mocks.NewMockCache(ctrl),
		idGen:        mocks.NewMockIDGenerator(ctrl),
	}
}

func (m receiptMocks) useCase() *usecase.ReceiptUseCase {
	return usecase.NewReceiptUseCase(
		m.txManager, m.receiptRepo, m.invoiceRepo, m.movementRepo,
		m.clientRepo, m.cache, m.idGen, metrics.NewNop(), zerolog.Nop(),
	)
}

type allocation struct {
	invoiceID  string
	amountPaid decimal.Decimal
	status     domain.InvoiceStatus
}

func TestReceiptUseCase_CreateReceipt_AllocatesOldestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReceiptMocks(ctrl)

	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)

	// inv-new is listed first but due later; allocation must hit inv-old first.
	m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-new").Return(&domain.Invoice{
		ID:         "inv-new",
		ClientID:   "c1",
		Totals:     domain.Totals{Total: decimal.NewFromInt(500)},
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueAt:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-old").Return(&domain.Invoice{
		ID:         "inv-old",
		ClientID:   "c1",
		Totals:     domain.Totals{Total: decimal.NewFromInt(1000)},
		AmountPaid: decimal.Zero,
		Status:     domain.InvoicePending,
		DueAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	m.idGen.EXPECT().Generate().Return("rec-1")
	m.idGen.EXPECT().Generate().Return("mov-1")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.receiptRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)

	var recorded *domain.Movement
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, mv *domain.Movement) error {
			recorded = mv
			return nil
		})

	var allocations []allocation
	m.invoiceRepo.EXPECT().UpdatePaidTx(gomock.Any(), m.tx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, id string, amountPaid decimal.Decimal, status domain.InvoiceStatus, _ *time.Time) error {
			allocations = append(allocations, allocation{invoiceID: id, amountPaid: amountPaid, status: status})
			return nil
		}).Times(2)

	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), "account:c1").Return(nil)

	receipt, err := m.useCase().CreateReceipt(context.Background(), usecase.CreateReceiptInput{
		Number:          "RC-0001",
		ClientID:        "c1",
		Amount:          decimal.NewFromInt(1200),
		Method:          domain.PaymentTransfer,
		AppliedInvoices: []string{"inv-new", "inv-old"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorded == nil || !recorded.Credit.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected credit movement of 1200, got %+v", recorded)
	}

	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	// 1200 = 1000 against the older invoice, 200 against the newer one.
	if allocations[0].invoiceID != "inv-old" || !allocations[0].amountPaid.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected inv-old fully paid first, got %s/%s", allocations[0].invoiceID, allocations[0].amountPaid)
	}
	if allocations[0].status != domain.InvoicePaid {
		t.Errorf("expected inv-old to be paid, got %s", allocations[0].status)
	}
	if allocations[1].invoiceID != "inv-new" || !allocations[1].amountPaid.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected 200 allocated to inv-new, got %s/%s", allocations[1].invoiceID, allocations[1].amountPaid)
	}
	if allocations[1].status != domain.InvoicePartiallyPaid {
		t.Errorf("expected inv-new partially paid, got %s", allocations[1].status)
	}

	if receipt.Method != domain.PaymentTransfer {
		t.Errorf("expected transfer method, got %s", receipt.Method)
	}
}

func TestReceiptUseCase_CreateReceipt_RejectsForeignInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReceiptMocks(ctrl)

	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)
	m.invoiceRepo.EXPECT().GetByID(gomock.Any(), "inv-x").Return(&domain.Invoice{
		ID:       "inv-x",
		ClientID: "someone-else",
		Totals:   domain.Totals{Total: decimal.NewFromInt(100)},
	}, nil)

	_, err := m.useCase().CreateReceipt(context.Background(), usecase.CreateReceiptInput{
		Number:          "RC-0002",
		ClientID:        "c1",
		Amount:          decimal.NewFromInt(100),
		AppliedInvoices: []string{"inv-x"},
	})
	if !errors.Is(err, domain.ErrMixedClients) {
		t.Fatalf("expected ErrMixedClients, got %v", err)
	}
}

func TestReceiptUseCase_CreateReceipt_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateReceiptInput
		wantErr error
	}{
		{
			name:    "empty number",
			input:   usecase.CreateReceiptInput{ClientID: "c1", Amount: decimal.NewFromInt(10)},
			wantErr: domain.ErrEmptyDocumentNumber,
		},
		{
			name:    "zero amount",
			input:   usecase.CreateReceiptInput{Number: "RC-1", ClientID: "c1", Amount: decimal.Zero},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			input:   usecase.CreateReceiptInput{Number: "RC-1", ClientID: "c1", Amount: decimal.NewFromInt(-5)},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newReceiptMocks(ctrl)
			_, err := m.useCase().CreateReceipt(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReceiptUseCase_CreateReceipt_AutoAllocates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReceiptMocks(ctrl)

	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)

	// No invoices named: the client's invoices are fetched oldest due
	// first. The settled one is skipped, the open one absorbs the rest.
	m.invoiceRepo.EXPECT().ListByClient(gomock.Any(), "c1").Return([]*domain.Invoice{
		{
			ID:         "inv-paid",
			ClientID:   "c1",
			Totals:     domain.Totals{Total: decimal.NewFromInt(400)},
			AmountPaid: decimal.NewFromInt(400),
			Status:     domain.InvoicePaid,
			DueAt:      time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         "inv-open",
			ClientID:   "c1",
			Totals:     domain.Totals{Total: decimal.NewFromInt(600)},
			AmountPaid: decimal.Zero,
			Status:     domain.InvoicePending,
			DueAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil)

	m.idGen.EXPECT().Generate().Return("rec-1")
	m.idGen.EXPECT().Generate().Return("mov-1")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.receiptRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)

	var got allocation
	m.invoiceRepo.EXPECT().UpdatePaidTx(gomock.Any(), m.tx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ usecase.Transaction, id string, amountPaid decimal.Decimal, status domain.InvoiceStatus, _ *time.Time) error {
			got = allocation{invoiceID: id, amountPaid: amountPaid, status: status}
			return nil
		})

	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), "account:c1").Return(nil)

	receipt, err := m.useCase().CreateReceipt(context.Background(), usecase.CreateReceiptInput{
		Number:   "RC-0004",
		ClientID: "c1",
		Amount:   decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.invoiceID != "inv-open" || !got.amountPaid.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected 250 allocated to inv-open, got %s/%s", got.invoiceID, got.amountPaid)
	}
	if got.status != domain.InvoicePartiallyPaid {
		t.Errorf("expected inv-open partially paid, got %s", got.status)
	}
	if len(receipt.AppliedInvoices) != 1 || receipt.AppliedInvoices[0] != "inv-open" {
		t.Errorf("expected receipt to record the allocation, got %v", receipt.AppliedInvoices)
	}
}

func TestReceiptUseCase_CreateReceipt_NoInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReceiptMocks(ctrl)

	// A receipt for a client with no invoices at all is an on-account
	// payment: it still credits the ledger.
	m.clientRepo.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Client{ID: "c1", Name: "Acme SRL"}, nil)
	m.invoiceRepo.EXPECT().ListByClient(gomock.Any(), "c1").Return(nil, nil)
	m.idGen.EXPECT().Generate().Return("rec-1")
	m.idGen.EXPECT().Generate().Return("mov-1")
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.receiptRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.movementRepo.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), "account:c1").Return(nil)

	receipt, err := m.useCase().CreateReceipt(context.Background(), usecase.CreateReceiptInput{
		Number:   "RC-0003",
		ClientID: "c1",
		Amount:   decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Method != domain.PaymentCash {
		t.Errorf("expected cash as default method, got %s", receipt.Method)
	}
}
