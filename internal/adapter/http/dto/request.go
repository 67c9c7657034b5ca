package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// LineItemRequest is one document row as sent by clients.
type LineItemRequest struct {
	ArticleID   string          `json:"article_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func lineItemsToDomain(items []LineItemRequest) []domain.LineItem {
	result := make([]domain.LineItem, len(items))
	for i, item := range items {
		result[i] = domain.LineItem{
			ArticleID:   item.ArticleID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return result
}

// CreateClientRequest represents a request to register a client.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClientRequest) ToUseCaseInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TaxID:   r.TaxID,
	}
}

// UpdateClientRequest represents a partial client update.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateClientRequest) ToUseCaseInput() usecase.UpdateClientInput {
	return usecase.UpdateClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TaxID:   r.TaxID,
	}
}

// CreateArticleRequest represents a request to add a catalog article.
type CreateArticleRequest struct {
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateArticleRequest) ToUseCaseInput() usecase.CreateArticleInput {
	return usecase.CreateArticleInput{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Category:    domain.ArticleCategory(r.Category),
	}
}

// UpdateArticleRequest represents a partial article update.
type UpdateArticleRequest struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateArticleRequest) ToUseCaseInput() usecase.UpdateArticleInput {
	input := usecase.UpdateArticleInput{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
	}
	if r.Category != nil {
		category := domain.ArticleCategory(*r.Category)
		input.Category = &category
	}
	return input
}

// CreateOrderRequest represents a request to create a sales order.
type CreateOrderRequest struct {
	Number     string            `json:"number"`
	ClientID   string            `json:"client_id"`
	Items      []LineItemRequest `json:"items"`
	TaxRate    *decimal.Decimal  `json:"tax_rate,omitempty"`
	OrderedAt  time.Time         `json:"ordered_at,omitempty"`
	DeliveryAt *time.Time        `json:"delivery_at,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrderRequest) ToUseCaseInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		Number:     r.Number,
		ClientID:   r.ClientID,
		Items:      lineItemsToDomain(r.Items),
		TaxRate:    r.TaxRate,
		OrderedAt:  r.OrderedAt,
		DeliveryAt: r.DeliveryAt,
		Notes:      r.Notes,
	}
}

// UpdateStatusRequest carries a bare status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateInvoiceRequest represents a request to issue an invoice.
type CreateInvoiceRequest struct {
	Number   string            `json:"number"`
	OrderID  string            `json:"order_id,omitempty"`
	ClientID string            `json:"client_id"`
	Items    []LineItemRequest `json:"items"`
	TaxRate  *decimal.Decimal  `json:"tax_rate,omitempty"`
	IssuedAt time.Time         `json:"issued_at,omitempty"`
	DueAt    time.Time         `json:"due_at"`
	Notes    string            `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		Number:   r.Number,
		OrderID:  r.OrderID,
		ClientID: r.ClientID,
		Items:    lineItemsToDomain(r.Items),
		TaxRate:  r.TaxRate,
		IssuedAt: r.IssuedAt,
		DueAt:    r.DueAt,
		Notes:    r.Notes,
	}
}

// RegisterPaymentRequest represents a direct payment against an invoice.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreatePurchaseRequest represents a request to record a purchase.
type CreatePurchaseRequest struct {
	Number   string            `json:"number"`
	Supplier string            `json:"supplier"`
	Category string            `json:"category,omitempty"`
	Items    []LineItemRequest `json:"items"`
	TaxRate  *decimal.Decimal  `json:"tax_rate,omitempty"`
	BoughtAt time.Time         `json:"bought_at,omitempty"`
	Notes    string            `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePurchaseRequest) ToUseCaseInput() usecase.CreatePurchaseInput {
	return usecase.CreatePurchaseInput{
		Number:   r.Number,
		Supplier: r.Supplier,
		Category: domain.ArticleCategory(r.Category),
		Items:    lineItemsToDomain(r.Items),
		TaxRate:  r.TaxRate,
		BoughtAt: r.BoughtAt,
		Notes:    r.Notes,
	}
}

// CreateDeliveryNoteRequest represents a request to issue a delivery note.
type CreateDeliveryNoteRequest struct {
	Number    string            `json:"number"`
	OrderID   string            `json:"order_id"`
	InvoiceID string            `json:"invoice_id,omitempty"`
	ClientID  string            `json:"client_id"`
	Items     []LineItemRequest `json:"items"`
	Carrier   string            `json:"carrier,omitempty"`
	IssuedAt  time.Time         `json:"issued_at,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDeliveryNoteRequest) ToUseCaseInput() usecase.CreateDeliveryNoteInput {
	return usecase.CreateDeliveryNoteInput{
		Number:    r.Number,
		OrderID:   r.OrderID,
		InvoiceID: r.InvoiceID,
		ClientID:  r.ClientID,
		Items:     lineItemsToDomain(r.Items),
		Carrier:   r.Carrier,
		IssuedAt:  r.IssuedAt,
		Notes:     r.Notes,
	}
}

// CreateQuoteRequest represents a request to create a quote.
type CreateQuoteRequest struct {
	Number       string            `json:"number"`
	ClientID     string            `json:"client_id"`
	Items        []LineItemRequest `json:"items"`
	TaxRate      *decimal.Decimal  `json:"tax_rate,omitempty"`
	ValidityDays int               `json:"validity_days,omitempty"`
	IssuedAt     time.Time         `json:"issued_at,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateQuoteRequest) ToUseCaseInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		Number:       r.Number,
		ClientID:     r.ClientID,
		Items:        lineItemsToDomain(r.Items),
		TaxRate:      r.TaxRate,
		ValidityDays: r.ValidityDays,
		IssuedAt:     r.IssuedAt,
		Notes:        r.Notes,
	}
}

// ConvertQuoteRequest carries the order number for a quote conversion.
type ConvertQuoteRequest struct {
	OrderNumber string `json:"order_number"`
}

// CreateNoteRequest represents a request to issue a credit or debit note.
type CreateNoteRequest struct {
	Number    string            `json:"number"`
	Kind      string            `json:"kind"`
	InvoiceID string            `json:"invoice_id,omitempty"`
	ClientID  string            `json:"client_id"`
	Reason    string            `json:"reason"`
	Items     []LineItemRequest `json:"items"`
	TaxRate   *decimal.Decimal  `json:"tax_rate,omitempty"`
	IssuedAt  time.Time         `json:"issued_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateNoteRequest) ToUseCaseInput() usecase.CreateNoteInput {
	return usecase.CreateNoteInput{
		Number:    r.Number,
		Kind:      domain.NoteKind(r.Kind),
		InvoiceID: r.InvoiceID,
		ClientID:  r.ClientID,
		Reason:    r.Reason,
		Items:     lineItemsToDomain(r.Items),
		TaxRate:   r.TaxRate,
		IssuedAt:  r.IssuedAt,
	}
}

// CreateReceiptRequest represents a request to collect a payment.
type CreateReceiptRequest struct {
	Number          string          `json:"number"`
	ClientID        string          `json:"client_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method,omitempty"`
	AppliedInvoices []string        `json:"applied_invoices,omitempty"`
	ReceivedAt      time.Time       `json:"received_at,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReceiptRequest) ToUseCaseInput() usecase.CreateReceiptInput {
	return usecase.CreateReceiptInput{
		Number:          r.Number,
		ClientID:        r.ClientID,
		Amount:          r.Amount,
		Method:          domain.PaymentMethod(r.Method),
		AppliedInvoices: r.AppliedInvoices,
		ReceivedAt:      r.ReceivedAt,
		Notes:           r.Notes,
	}
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	CompanyName    *string          `json:"company_name,omitempty"`
	CompanyTaxID   *string          `json:"company_tax_id,omitempty"`
	CompanyAddress *string          `json:"company_address,omitempty"`
	CompanyEmail   *string          `json:"company_email,omitempty"`
	CompanyPhone   *string          `json:"company_phone,omitempty"`
	Currency       *string          `json:"currency,omitempty"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate,omitempty"`
	AutoNumbering  *bool            `json:"auto_numbering,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSettingsRequest) ToUseCaseInput() usecase.UpdateSettingsInput {
	return usecase.UpdateSettingsInput{
		CompanyName:    r.CompanyName,
		CompanyTaxID:   r.CompanyTaxID,
		CompanyAddress: r.CompanyAddress,
		CompanyEmail:   r.CompanyEmail,
		CompanyPhone:   r.CompanyPhone,
		Currency:       r.Currency,
		DefaultTaxRate: r.DefaultTaxRate,
		AutoNumbering:  r.AutoNumbering,
	}
}
