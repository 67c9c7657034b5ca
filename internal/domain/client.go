package domain

import "time"

// Client is a customer of the business. Movements reference clients by
// id; the name is display-only.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string // CUIT or DNI
	CreatedAt time.Time
	UpdatedAt time.Time
}
