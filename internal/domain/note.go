package domain

import "time"

// NoteKind distinguishes credit notes from debit notes.
type NoteKind string

const (
	// NoteCredit reduces what the client owes.
	NoteCredit NoteKind = "credit"
	// NoteDebit increases what the client owes.
	NoteDebit NoteKind = "debit"
)

// Valid reports whether k is a known note kind.
func (k NoteKind) Valid() bool {
	return k == NoteCredit || k == NoteDebit
}

// MovementKind maps the note to the ledger movement it records.
func (k NoteKind) MovementKind() MovementKind {
	if k == NoteCredit {
		return MovementCreditNote
	}
	return MovementDebitNote
}

// Note is a credit or debit note, optionally tied to an invoice.
// Creating one records the matching movement on the client's account.
type Note struct {
	ID         string
	Number     string
	Kind       NoteKind
	InvoiceID  string
	ClientID   string
	ClientName string
	Reason     string
	Items      []LineItem
	Totals     Totals
	IssuedAt   time.Time
	CreatedAt  time.Time
}
