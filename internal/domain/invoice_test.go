package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInvoice_DeriveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(1000)

	tests := []struct {
		name   string
		status InvoiceStatus
		paid   int64
		dueAt  time.Time
		want   InvoiceStatus
	}{
		{"unpaid before due date", InvoicePending, 0, now.AddDate(0, 0, 10), InvoicePending},
		{"unpaid past due date", InvoicePending, 0, now.AddDate(0, 0, -1), InvoiceOverdue},
		{"partial payment before due", InvoicePending, 400, now.AddDate(0, 0, 10), InvoicePartiallyPaid},
		{"partial payment past due still partial", InvoicePending, 400, now.AddDate(0, 0, -1), InvoicePartiallyPaid},
		{"fully paid by amount", InvoicePending, 1000, now.AddDate(0, 0, -1), InvoicePaid},
		{"overpaid reads as paid", InvoicePending, 1200, now.AddDate(0, 0, 10), InvoicePaid},
		{"explicitly marked paid", InvoicePaid, 0, now.AddDate(0, 0, -1), InvoicePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{
				Status:     tt.status,
				AmountPaid: decimal.NewFromInt(tt.paid),
				DueAt:      tt.dueAt,
				Totals:     Totals{Total: total},
			}

			if got := inv.DeriveStatus(now); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInvoice_Outstanding(t *testing.T) {
	inv := &Invoice{
		Totals:     Totals{Total: decimal.NewFromInt(1000)},
		AmountPaid: decimal.NewFromInt(400),
	}
	if !inv.Outstanding().Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected 600 outstanding, got %s", inv.Outstanding())
	}

	inv.AmountPaid = decimal.NewFromInt(1500)
	if !inv.Outstanding().IsZero() {
		t.Errorf("overpaid invoice should have zero outstanding, got %s", inv.Outstanding())
	}
}

func TestQuote_EffectiveStatus(t *testing.T) {
	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	q := &Quote{Status: QuoteSent, IssuedAt: issued, ValidityDays: 30}

	if got := q.EffectiveStatus(issued.AddDate(0, 0, 10)); got != QuoteSent {
		t.Errorf("inside validity: expected sent, got %s", got)
	}
	if got := q.EffectiveStatus(issued.AddDate(0, 0, 31)); got != QuoteExpired {
		t.Errorf("past validity: expected expired, got %s", got)
	}

	// Terminal states do not expire.
	q.Status = QuoteAccepted
	if got := q.EffectiveStatus(issued.AddDate(0, 1, 0)); got != QuoteAccepted {
		t.Errorf("accepted quote must stay accepted, got %s", got)
	}
}

func TestQuote_CanConvert(t *testing.T) {
	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := issued.AddDate(0, 0, 5)

	q := &Quote{Status: QuoteAccepted, IssuedAt: issued, ValidityDays: 30}
	if !q.CanConvert(now) {
		t.Error("accepted quote should be convertible")
	}

	q.Status = QuoteConverted
	if q.CanConvert(now) {
		t.Error("already converted quote must not convert again")
	}

	q.Status = QuoteSent
	if q.CanConvert(now) {
		t.Error("sent quote must not convert")
	}
}
