package domain

import "time"

// QuoteStatus is the negotiation state of a quote (presupuesto).
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteSent      QuoteStatus = "sent"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteRejected  QuoteStatus = "rejected"
	QuoteConverted QuoteStatus = "converted"
	QuoteExpired   QuoteStatus = "expired"
)

// Valid reports whether s is a known quote status.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected, QuoteConverted, QuoteExpired:
		return true
	}
	return false
}

// Quote is a priced offer with a validity window. Accepted quotes can
// be converted into orders exactly once.
type Quote struct {
	ID           string
	Number       string
	ClientID     string
	ClientName   string
	Items        []LineItem
	Totals       Totals
	Status       QuoteStatus
	ValidityDays int
	IssuedAt     time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpiresAt is the end of the validity window.
func (q *Quote) ExpiresAt() time.Time {
	return q.IssuedAt.AddDate(0, 0, q.ValidityDays)
}

// EffectiveStatus folds expiry into the stored status: a draft or sent
// quote past its validity reads as expired. Terminal states stand.
func (q *Quote) EffectiveStatus(now time.Time) QuoteStatus {
	switch q.Status {
	case QuoteDraft, QuoteSent:
		if now.After(q.ExpiresAt()) {
			return QuoteExpired
		}
	}
	return q.Status
}

// CanConvert reports whether the quote may become an order.
func (q *Quote) CanConvert(now time.Time) bool {
	return q.EffectiveStatus(now) == QuoteAccepted
}
