package domain

import "errors"

var (
	// Ledger errors
	ErrNegativeAmount = errors.New("movement amount cannot be negative")
	ErrMixedClients   = errors.New("movements belong to more than one client")

	// Lookup errors
	ErrClientNotFound       = errors.New("client not found")
	ErrArticleNotFound      = errors.New("article not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrDeliveryNoteNotFound = errors.New("delivery note not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrNoteNotFound         = errors.New("note not found")
	ErrReceiptNotFound      = errors.New("receipt not found")
	ErrSettingsNotFound     = errors.New("settings not found")

	// Document errors
	ErrInvalidArticleName  = errors.New("invalid article name")
	ErrEmptyDocumentNumber = errors.New("document number is required")
	ErrNoLineItems         = errors.New("document requires at least one line item")
	ErrInvalidStatus       = errors.New("invalid status transition")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrQuoteNotConvertible = errors.New("only accepted quotes can be converted")
)
