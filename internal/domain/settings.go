package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single business-wide configuration row: company
// identity plus invoicing defaults.
type Settings struct {
	CompanyName    string
	CompanyTaxID   string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	Currency       string
	DefaultTaxRate decimal.Decimal // IVA %, applied when a document omits its rate
	AutoNumbering  bool
	UpdatedAt      time.Time
}

// DefaultSettings is what a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		Currency:       "ARS",
		DefaultTaxRate: decimal.NewFromInt(21),
		AutoNumbering:  true,
	}
}
