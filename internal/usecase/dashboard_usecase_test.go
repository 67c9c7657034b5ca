package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
	"github.com/mgiordano/pymebooks/internal/usecase/mocks"
)

func TestDashboardUseCase_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoiceRepo := mocks.NewMockInvoiceRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	movementRepo := mocks.NewMockMovementRepository(ctrl)

	future := time.Now().AddDate(0, 1, 0)
	past := time.Now().AddDate(0, 0, -10)

	invoiceRepo.EXPECT().List(gomock.Any(), 100, 0).Return([]*domain.Invoice{
		{
			ID: "inv-1", Totals: domain.Totals{Total: decimal.NewFromInt(1000)},
			AmountPaid: decimal.Zero, Status: domain.InvoicePending, DueAt: future,
		},
		{
			ID: "inv-2", Totals: domain.Totals{Total: decimal.NewFromInt(500)},
			AmountPaid: decimal.Zero, Status: domain.InvoicePending, DueAt: past,
		},
		{
			ID: "inv-3", Totals: domain.Totals{Total: decimal.NewFromInt(300)},
			AmountPaid: decimal.NewFromInt(300), Status: domain.InvoicePaid, DueAt: past,
		},
	}, nil)

	purchaseRepo.EXPECT().List(gomock.Any(), 100, 0).Return([]*domain.Purchase{
		{ID: "p1", Totals: domain.Totals{Total: decimal.NewFromInt(400)}},
		{ID: "p2", Totals: domain.Totals{Total: decimal.NewFromInt(200)}},
	}, nil)

	orderRepo.EXPECT().List(gomock.Any(), 100, 0).Return([]*domain.Order{
		{ID: "o1", Status: domain.OrderPending},
		{ID: "o2", Status: domain.OrderInProgress},
		{ID: "o3", Status: domain.OrderCompleted},
		{ID: "o4", Status: domain.OrderCancelled},
	}, nil)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	movementRepo.EXPECT().ListAll(gomock.Any()).Return([]domain.Movement{
		{ID: "m1", ClientID: "c1", Date: base, Kind: domain.MovementInvoice, Debit: decimal.NewFromInt(1500), Credit: decimal.Zero},
		{ID: "m2", ClientID: "c1", Date: base, Kind: domain.MovementPayment, Debit: decimal.Zero, Credit: decimal.NewFromInt(300)},
		{ID: "m3", ClientID: "c2", Date: base, Kind: domain.MovementPayment, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}, nil)

	uc := usecase.NewDashboardUseCase(invoiceRepo, purchaseRepo, orderRepo, movementRepo, zerolog.Nop())

	dash, err := uc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dash.TotalSales.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("expected total sales 1800, got %s", dash.TotalSales)
	}
	if !dash.TotalExpenses.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected total expenses 600, got %s", dash.TotalExpenses)
	}
	if !dash.NetProfit.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected net profit 1200, got %s", dash.NetProfit)
	}
	if dash.PendingOrders != 2 {
		t.Errorf("expected 2 pending orders, got %d", dash.PendingOrders)
	}
	if dash.PendingInvoices != 1 {
		t.Errorf("expected 1 pending invoice, got %d", dash.PendingInvoices)
	}
	if dash.OverdueInvoices != 1 {
		t.Errorf("expected 1 overdue invoice, got %d", dash.OverdueInvoices)
	}
	if !dash.TotalReceivable.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("expected total receivable 1100, got %s", dash.TotalReceivable)
	}
	if dash.DebtorClients != 1 || dash.CreditorClients != 1 {
		t.Errorf("expected 1 debtor and 1 creditor, got %d/%d", dash.DebtorClients, dash.CreditorClients)
	}
}

func TestDashboardUseCase_GetDashboard_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoiceRepo := mocks.NewMockInvoiceRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	movementRepo := mocks.NewMockMovementRepository(ctrl)

	invoiceRepo.EXPECT().List(gomock.Any(), 100, 0).Return(nil, nil)
	purchaseRepo.EXPECT().List(gomock.Any(), 100, 0).Return(nil, nil)
	orderRepo.EXPECT().List(gomock.Any(), 100, 0).Return(nil, nil)
	movementRepo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	uc := usecase.NewDashboardUseCase(invoiceRepo, purchaseRepo, orderRepo, movementRepo, zerolog.Nop())

	dash, err := uc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dash.TotalSales.IsZero() || !dash.TotalExpenses.IsZero() || !dash.NetProfit.IsZero() {
		t.Errorf("expected zeroed dashboard, got %+v", dash)
	}
	if dash.PendingOrders != 0 || dash.PendingInvoices != 0 || dash.OverdueInvoices != 0 {
		t.Errorf("expected zero counts, got %+v", dash)
	}
}
