package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// Dashboard is the aggregated business snapshot served to the home view.
type Dashboard struct {
	TotalSales      decimal.Decimal
	TotalExpenses   decimal.Decimal
	NetProfit       decimal.Decimal
	PendingOrders   int
	PendingInvoices int
	OverdueInvoices int
	TotalReceivable decimal.Decimal
	DebtorClients   int
	CreditorClients int
}

// DashboardUseCase aggregates invoices, purchases, orders and the
// ledger into a single snapshot.
type DashboardUseCase struct {
	invoiceRepo  InvoiceRepository
	purchaseRepo PurchaseRepository
	orderRepo    OrderRepository
	movementRepo MovementRepository
	logger       zerolog.Logger
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(
	invoiceRepo InvoiceRepository,
	purchaseRepo PurchaseRepository,
	orderRepo OrderRepository,
	movementRepo MovementRepository,
	logger zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		orderRepo:    orderRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// GetDashboard computes the snapshot. Sales sum issued invoice totals,
// expenses sum purchase totals, profit is the difference. Invoice
// statuses are derived at read time so an invoice past due counts as
// overdue even if stored as pending.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now().UTC()
	dash := &Dashboard{
		TotalSales:      decimal.Zero,
		TotalExpenses:   decimal.Zero,
		NetProfit:       decimal.Zero,
		TotalReceivable: decimal.Zero,
	}

	for offset := 0; ; offset += scanPageSize {
		invoices, err := uc.invoiceRepo.List(ctx, scanPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, inv := range invoices {
			dash.TotalSales = dash.TotalSales.Add(inv.Totals.Total)
			switch inv.DeriveStatus(now) {
			case domain.InvoicePending, domain.InvoicePartiallyPaid:
				dash.PendingInvoices++
			case domain.InvoiceOverdue:
				dash.OverdueInvoices++
			}
		}
		if len(invoices) < scanPageSize {
			break
		}
	}

	for offset := 0; ; offset += scanPageSize {
		purchases, err := uc.purchaseRepo.List(ctx, scanPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range purchases {
			dash.TotalExpenses = dash.TotalExpenses.Add(p.Totals.Total)
		}
		if len(purchases) < scanPageSize {
			break
		}
	}

	for offset := 0; ; offset += scanPageSize {
		orders, err := uc.orderRepo.List(ctx, scanPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if o.Status == domain.OrderPending || o.Status == domain.OrderInProgress {
				dash.PendingOrders++
			}
		}
		if len(orders) < scanPageSize {
			break
		}
	}

	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := domain.ComputeAccounts(movements)
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizeAccounts(accounts)
	dash.TotalReceivable = summary.TotalBalance
	dash.DebtorClients = summary.Debtors
	dash.CreditorClients = summary.Creditors

	dash.NetProfit = dash.TotalSales.Sub(dash.TotalExpenses)

	uc.logger.Debug().
		Str("total_sales", dash.TotalSales.String()).
		Str("total_expenses", dash.TotalExpenses.String()).
		Int("pending_orders", dash.PendingOrders).
		Msg("dashboard computed")

	return dash, nil
}
