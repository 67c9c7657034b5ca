package domain

import "time"

// DeliveryStatus is the transit state of a delivery note (remito).
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered:
		return true
	}
	return false
}

// DeliveryNote accompanies goods out of the warehouse. It references an
// order and optionally the invoice that billed it; it has no ledger effect.
type DeliveryNote struct {
	ID          string
	Number      string
	OrderID     string
	InvoiceID   string
	ClientID    string
	ClientName  string
	Items       []LineItem
	Carrier     string
	Status      DeliveryStatus
	IssuedAt    time.Time
	DeliveredAt *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
