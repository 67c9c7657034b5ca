package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a receipt was collected.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCheck    PaymentMethod = "check"
	PaymentCard     PaymentMethod = "card"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCheck, PaymentCard:
		return true
	}
	return false
}

// Receipt is a payment collected from a client. Creating one records a
// credit (payment) movement and allocates the amount across the applied
// invoices.
type Receipt struct {
	ID              string
	Number          string
	ClientID        string
	ClientName      string
	Amount          decimal.Decimal
	Method          PaymentMethod
	AppliedInvoices []string
	ReceivedAt      time.Time
	Notes           string
	CreatedAt       time.Time
}
