package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LineItemResponse is one document row in API responses.
type LineItemResponse struct {
	ArticleID   string          `json:"article_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func lineItemsFromDomain(items []domain.LineItem) []LineItemResponse {
	result := make([]LineItemResponse, len(items))
	for i, item := range items {
		result[i] = LineItemResponse{
			ArticleID:   item.ArticleID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		}
	}
	return result
}

// TotalsResponse is the derived money block of a document.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func totalsFromDomain(t domain.Totals) TotalsResponse {
	return TotalsResponse{Subtotal: t.Subtotal, TaxRate: t.TaxRate, Tax: t.Tax, Total: t.Total}
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// ArticleResponse represents a catalog article in API responses.
type ArticleResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ArticleFromDomain converts a domain article to a response.
func ArticleFromDomain(a *domain.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		UnitPrice:   a.UnitPrice,
		Category:    string(a.Category),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ArticlesFromDomain converts domain articles to responses.
func ArticlesFromDomain(articles []*domain.Article) []*ArticleResponse {
	result := make([]*ArticleResponse, len(articles))
	for i, a := range articles {
		result[i] = ArticleFromDomain(a)
	}
	return result
}

// OrderResponse represents a sales order in API responses.
type OrderResponse struct {
	ID         string             `json:"id"`
	Number     string             `json:"number"`
	ClientID   string             `json:"client_id"`
	ClientName string             `json:"client_name"`
	Items      []LineItemResponse `json:"items"`
	Totals     TotalsResponse     `json:"totals"`
	Status     string             `json:"status"`
	OrderedAt  time.Time          `json:"ordered_at"`
	DeliveryAt *time.Time         `json:"delivery_at,omitempty"`
	QuoteID    string             `json:"quote_id,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		ClientID:   o.ClientID,
		ClientName: o.ClientName,
		Items:      lineItemsFromDomain(o.Items),
		Totals:     totalsFromDomain(o.Totals),
		Status:     string(o.Status),
		OrderedAt:  o.OrderedAt,
		DeliveryAt: o.DeliveryAt,
		QuoteID:    o.QuoteID,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	OrderID     string             `json:"order_id,omitempty"`
	ClientID    string             `json:"client_id"`
	ClientName  string             `json:"client_name"`
	Items       []LineItemResponse `json:"items"`
	Totals      TotalsResponse     `json:"totals"`
	AmountPaid  decimal.Decimal    `json:"amount_paid"`
	Outstanding decimal.Decimal    `json:"outstanding"`
	Status      string             `json:"status"`
	IssuedAt    time.Time          `json:"issued_at"`
	DueAt       time.Time          `json:"due_at"`
	PaidAt      *time.Time         `json:"paid_at,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// InvoiceFromDomain converts a domain invoice to a response.
func InvoiceFromDomain(i *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          i.ID,
		Number:      i.Number,
		OrderID:     i.OrderID,
		ClientID:    i.ClientID,
		ClientName:  i.ClientName,
		Items:       lineItemsFromDomain(i.Items),
		Totals:      totalsFromDomain(i.Totals),
		AmountPaid:  i.AmountPaid,
		Outstanding: i.Outstanding(),
		Status:      string(i.Status),
		IssuedAt:    i.IssuedAt,
		DueAt:       i.DueAt,
		PaidAt:      i.PaidAt,
		Notes:       i.Notes,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// InvoicesFromDomain converts domain invoices to responses.
func InvoicesFromDomain(invoices []*domain.Invoice) []*InvoiceResponse {
	result := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		result[i] = InvoiceFromDomain(inv)
	}
	return result
}

// PurchaseResponse represents a purchase in API responses.
type PurchaseResponse struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Supplier  string             `json:"supplier"`
	Category  string             `json:"category"`
	Items     []LineItemResponse `json:"items"`
	Totals    TotalsResponse     `json:"totals"`
	Payment   string             `json:"payment"`
	BoughtAt  time.Time          `json:"bought_at"`
	PaidAt    *time.Time         `json:"paid_at,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// PurchaseFromDomain converts a domain purchase to a response.
func PurchaseFromDomain(p *domain.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		ID:        p.ID,
		Number:    p.Number,
		Supplier:  p.Supplier,
		Category:  string(p.Category),
		Items:     lineItemsFromDomain(p.Items),
		Totals:    totalsFromDomain(p.Totals),
		Payment:   string(p.Payment),
		BoughtAt:  p.BoughtAt,
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PurchasesFromDomain converts domain purchases to responses.
func PurchasesFromDomain(purchases []*domain.Purchase) []*PurchaseResponse {
	result := make([]*PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = PurchaseFromDomain(p)
	}
	return result
}

// DeliveryNoteResponse represents a delivery note in API responses.
type DeliveryNoteResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	OrderID     string             `json:"order_id"`
	InvoiceID   string             `json:"invoice_id,omitempty"`
	ClientID    string             `json:"client_id"`
	ClientName  string             `json:"client_name"`
	Items       []LineItemResponse `json:"items"`
	Carrier     string             `json:"carrier,omitempty"`
	Status      string             `json:"status"`
	IssuedAt    time.Time          `json:"issued_at"`
	DeliveredAt *time.Time         `json:"delivered_at,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// DeliveryNoteFromDomain converts a domain delivery note to a response.
func DeliveryNoteFromDomain(n *domain.DeliveryNote) *DeliveryNoteResponse {
	return &DeliveryNoteResponse{
		ID:          n.ID,
		Number:      n.Number,
		OrderID:     n.OrderID,
		InvoiceID:   n.InvoiceID,
		ClientID:    n.ClientID,
		ClientName:  n.ClientName,
		Items:       lineItemsFromDomain(n.Items),
		Carrier:     n.Carrier,
		Status:      string(n.Status),
		IssuedAt:    n.IssuedAt,
		DeliveredAt: n.DeliveredAt,
		Notes:       n.Notes,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// DeliveryNotesFromDomain converts domain delivery notes to responses.
func DeliveryNotesFromDomain(notes []*domain.DeliveryNote) []*DeliveryNoteResponse {
	result := make([]*DeliveryNoteResponse, len(notes))
	for i, n := range notes {
		result[i] = DeliveryNoteFromDomain(n)
	}
	return result
}

// QuoteResponse represents a quote in API responses.
type QuoteResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	ClientID     string             `json:"client_id"`
	ClientName   string             `json:"client_name"`
	Items        []LineItemResponse `json:"items"`
	Totals       TotalsResponse     `json:"totals"`
	Status       string             `json:"status"`
	ValidityDays int                `json:"validity_days"`
	IssuedAt     time.Time          `json:"issued_at"`
	ExpiresAt    time.Time          `json:"expires_at"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QuoteFromDomain converts a domain quote to a response.
func QuoteFromDomain(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:           q.ID,
		Number:       q.Number,
		ClientID:     q.ClientID,
		ClientName:   q.ClientName,
		Items:        lineItemsFromDomain(q.Items),
		Totals:       totalsFromDomain(q.Totals),
		Status:       string(q.Status),
		ValidityDays: q.ValidityDays,
		IssuedAt:     q.IssuedAt,
		ExpiresAt:    q.ExpiresAt(),
		Notes:        q.Notes,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// QuotesFromDomain converts domain quotes to responses.
func QuotesFromDomain(quotes []*domain.Quote) []*QuoteResponse {
	result := make([]*QuoteResponse, len(quotes))
	for i, q := range quotes {
		result[i] = QuoteFromDomain(q)
	}
	return result
}

// NoteResponse represents a credit or debit note in API responses.
type NoteResponse struct {
	ID         string             `json:"id"`
	Number     string             `json:"number"`
	Kind       string             `json:"kind"`
	InvoiceID  string             `json:"invoice_id,omitempty"`
	ClientID   string             `json:"client_id"`
	ClientName string             `json:"client_name"`
	Reason     string             `json:"reason"`
	Items      []LineItemResponse `json:"items"`
	Totals     TotalsResponse     `json:"totals"`
	IssuedAt   time.Time          `json:"issued_at"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NoteFromDomain converts a domain note to a response.
func NoteFromDomain(n *domain.Note) *NoteResponse {
	return &NoteResponse{
		ID:         n.ID,
		Number:     n.Number,
		Kind:       string(n.Kind),
		InvoiceID:  n.InvoiceID,
		ClientID:   n.ClientID,
		ClientName: n.ClientName,
		Reason:     n.Reason,
		Items:      lineItemsFromDomain(n.Items),
		Totals:     totalsFromDomain(n.Totals),
		IssuedAt:   n.IssuedAt,
		CreatedAt:  n.CreatedAt,
	}
}

// NotesFromDomain converts domain notes to responses.
func NotesFromDomain(notes []*domain.Note) []*NoteResponse {
	result := make([]*NoteResponse, len(notes))
	for i, n := range notes {
		result[i] = NoteFromDomain(n)
	}
	return result
}

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	ClientID        string          `json:"client_id"`
	ClientName      string          `json:"client_name"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	AppliedInvoices []string        `json:"applied_invoices,omitempty"`
	ReceivedAt      time.Time       `json:"received_at"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:              r.ID,
		Number:          r.Number,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		Amount:          r.Amount,
		Method:          string(r.Method),
		AppliedInvoices: r.AppliedInvoices,
		ReceivedAt:      r.ReceivedAt,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

// ReceiptsFromDomain converts domain receipts to responses.
func ReceiptsFromDomain(receipts []*domain.Receipt) []*ReceiptResponse {
	result := make([]*ReceiptResponse, len(receipts))
	for i, r := range receipts {
		result[i] = ReceiptFromDomain(r)
	}
	return result
}

// AccountLineResponse is one row of a current-account statement.
type AccountLineResponse struct {
	MovementID     string          `json:"movement_id"`
	Date           time.Time       `json:"date"`
	Kind           string          `json:"kind"`
	DocumentNumber string          `json:"document_number,omitempty"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Balance        decimal.Decimal `json:"balance"`
}

// AccountResponse is a client's current-account projection.
type AccountResponse struct {
	ClientID     string                `json:"client_id"`
	ClientName   string                `json:"client_name,omitempty"`
	Lines        []AccountLineResponse `json:"lines"`
	TotalDebit   decimal.Decimal       `json:"total_debit"`
	TotalCredit  decimal.Decimal       `json:"total_credit"`
	FinalBalance decimal.Decimal       `json:"final_balance"`
	Status       string                `json:"status"`
}

// AccountFromView converts a computed account view to a response.
func AccountFromView(v *usecase.ClientAccountView) *AccountResponse {
	lines := make([]AccountLineResponse, len(v.Lines))
	for i, line := range v.Lines {
		lines[i] = AccountLineResponse{
			MovementID:     line.Movement.ID,
			Date:           line.Movement.Date,
			Kind:           string(line.Movement.Kind),
			DocumentNumber: line.Movement.DocumentNumber,
			Description:    line.Movement.Description,
			Debit:          line.Movement.Debit,
			Credit:         line.Movement.Credit,
			Balance:        line.Balance,
		}
	}
	return &AccountResponse{
		ClientID:     v.ClientID,
		ClientName:   v.ClientName,
		Lines:        lines,
		TotalDebit:   v.TotalDebit,
		TotalCredit:  v.TotalCredit,
		FinalBalance: v.FinalBalance,
		Status:       string(v.Status),
	}
}

// AccountsFromViews converts computed account views to responses.
func AccountsFromViews(views []*usecase.ClientAccountView) []*AccountResponse {
	result := make([]*AccountResponse, len(views))
	for i, v := range views {
		result[i] = AccountFromView(v)
	}
	return result
}

// AccountsSummaryResponse aggregates account classification counts.
type AccountsSummaryResponse struct {
	Debtors               int             `json:"debtors"`
	Creditors             int             `json:"creditors"`
	Settled               int             `json:"settled"`
	TotalBalance          decimal.Decimal `json:"total_balance"`
	AccountsWithMovements int             `json:"accounts_with_movements"`
}

// SummaryFromView converts an accounts summary view to a response.
func SummaryFromView(v *usecase.AccountsSummaryView) *AccountsSummaryResponse {
	return &AccountsSummaryResponse{
		Debtors:               v.Debtors,
		Creditors:             v.Creditors,
		Settled:               v.Settled,
		TotalBalance:          v.TotalBalance,
		AccountsWithMovements: v.AccountsWithMovements,
	}
}

// DashboardResponse is the aggregated business snapshot.
type DashboardResponse struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	PendingOrders   int             `json:"pending_orders"`
	PendingInvoices int             `json:"pending_invoices"`
	OverdueInvoices int             `json:"overdue_invoices"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	DebtorClients   int             `json:"debtor_clients"`
	CreditorClients int             `json:"creditor_clients"`
}

// DashboardFromUseCase converts the dashboard snapshot to a response.
func DashboardFromUseCase(d *usecase.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		TotalSales:      d.TotalSales,
		TotalExpenses:   d.TotalExpenses,
		NetProfit:       d.NetProfit,
		PendingOrders:   d.PendingOrders,
		PendingInvoices: d.PendingInvoices,
		OverdueInvoices: d.OverdueInvoices,
		TotalReceivable: d.TotalReceivable,
		DebtorClients:   d.DebtorClients,
		CreditorClients: d.CreditorClients,
	}
}

// SettingsResponse represents business settings in API responses.
type SettingsResponse struct {
	CompanyName    string          `json:"company_name,omitempty"`
	CompanyTaxID   string          `json:"company_tax_id,omitempty"`
	CompanyAddress string          `json:"company_address,omitempty"`
	CompanyEmail   string          `json:"company_email,omitempty"`
	CompanyPhone   string          `json:"company_phone,omitempty"`
	Currency       string          `json:"currency"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	AutoNumbering  bool            `json:"auto_numbering"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SettingsFromDomain converts domain settings to a response.
func SettingsFromDomain(s *domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		CompanyName:    s.CompanyName,
		CompanyTaxID:   s.CompanyTaxID,
		CompanyAddress: s.CompanyAddress,
		CompanyEmail:   s.CompanyEmail,
		CompanyPhone:   s.CompanyPhone,
		Currency:       s.Currency,
		DefaultTaxRate: s.DefaultTaxRate,
		AutoNumbering:  s.AutoNumbering,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ListResponse wraps a list payload with its count.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// NewListResponse builds a ListResponse from a slice.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Total: int64(len(items))}
}
