package domain

import "time"

// PaymentState is the payment state of a purchase.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentDone    PaymentState = "paid"
)

// Purchase is a supplier-side expense document. Purchases never touch
// client current accounts.
type Purchase struct {
	ID        string
	Number    string
	Supplier  string
	Category  ArticleCategory
	Items     []LineItem
	Totals    Totals
	Payment   PaymentState
	BoughtAt  time.Time
	PaidAt    *time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
