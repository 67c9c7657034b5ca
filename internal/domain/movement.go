package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind identifies the business event behind a ledger movement.
type MovementKind string

const (
	MovementInvoice    MovementKind = "invoice"
	MovementPayment    MovementKind = "payment"
	MovementCreditNote MovementKind = "credit_note"
	MovementDebitNote  MovementKind = "debit_note"
)

// Valid reports whether k is a known movement kind.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementInvoice, MovementPayment, MovementCreditNote, MovementDebitNote:
		return true
	}
	return false
}

// Movement is a single immutable current-account entry for a client.
// Debit increases what the client owes, credit decreases it. A movement
// carries exactly one of the two in practice; a zero movement is legal
// but inert.
type Movement struct {
	ID             string
	ClientID       string
	Date           time.Time
	Kind           MovementKind
	DocumentNumber string
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	CreatedAt      time.Time
}

// Delta is the signed effect of the movement on the client balance.
func (m *Movement) Delta() decimal.Decimal {
	return m.Debit.Sub(m.Credit)
}

// Validate checks the movement's amount fields. Negative amounts are
// rejected rather than propagated into the running balance.
func (m *Movement) Validate() error {
	if m.Debit.IsNegative() {
		return fmt.Errorf("%w: movement %s has negative debit %s", ErrNegativeAmount, m.ID, m.Debit)
	}
	if m.Credit.IsNegative() {
		return fmt.Errorf("%w: movement %s has negative credit %s", ErrNegativeAmount, m.ID, m.Credit)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("movement %s has unknown kind %q", m.ID, m.Kind)
	}
	return nil
}
