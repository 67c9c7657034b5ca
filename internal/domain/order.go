package domain

import "time"

// OrderStatus is the fulfillment state of a sales order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a sales order. Orders do not touch the ledger; invoicing does.
type Order struct {
	ID          string
	Number      string
	ClientID    string
	ClientName  string
	Items       []LineItem
	Totals      Totals
	Status      OrderStatus
	OrderedAt   time.Time
	DeliveryAt  *time.Time
	QuoteID     string // set when the order came from a converted quote
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
