package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem is one row of a commercial document (order, invoice,
// purchase, delivery note, quote, credit/debit note).
type LineItem struct {
	ArticleID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Subtotal is quantity times unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Totals holds the derived money amounts of a document.
type Totals struct {
	Subtotal decimal.Decimal
	TaxRate  decimal.Decimal // IVA percentage, e.g. 21
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives subtotal, tax and total from line items and an
// IVA percentage. The same arithmetic backs every document form.
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))

	return Totals{
		Subtotal: subtotal,
		TaxRate:  taxRate,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ValidateLineItems checks that a document carries at least one item and
// that no item has a negative quantity or price.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}
	for _, item := range items {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return ErrInvalidAmount
		}
	}
	return nil
}
