package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the collection state of an invoice.
type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "pending"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
)

// Invoice is an issued sales invoice. Issuing one records a debit
// movement on the client's current account.
type Invoice struct {
	ID         string
	Number     string
	OrderID    string
	ClientID   string
	ClientName string
	Items      []LineItem
	Totals     Totals
	AmountPaid decimal.Decimal
	Status     InvoiceStatus
	IssuedAt   time.Time
	DueAt      time.Time
	PaidAt     *time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeriveStatus computes the effective status at a point in time. An
// explicit paid mark or full payment wins, partial payment comes next,
// then a passed due date turns a pending invoice overdue.
func (i *Invoice) DeriveStatus(now time.Time) InvoiceStatus {
	switch {
	case i.Status == InvoicePaid || i.AmountPaid.GreaterThanOrEqual(i.Totals.Total):
		return InvoicePaid
	case i.AmountPaid.IsPositive():
		return InvoicePartiallyPaid
	case now.After(i.DueAt):
		return InvoiceOverdue
	default:
		return InvoicePending
	}
}

// Outstanding is the unpaid remainder, never negative.
func (i *Invoice) Outstanding() decimal.Decimal {
	remaining := i.Totals.Total.Sub(i.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
