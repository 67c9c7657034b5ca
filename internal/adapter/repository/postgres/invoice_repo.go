package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, number, order_id, client_id, client_name, items,
	subtotal, tax_rate, tax, total, amount_paid, status, issued_at, due_at, paid_at,
	notes, created_at, updated_at`

// CreateTx inserts an invoice inside the ledger transaction.
func (r *InvoiceRepository) CreateTx(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	pgxTx := tx.(*Tx).PgxTx()

	items, err := itemsToJSON(invoice.Items)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		invoice.ID, invoice.Number, invoice.OrderID, invoice.ClientID, invoice.ClientName, items,
		decimalToNumeric(invoice.Totals.Subtotal), decimalToNumeric(invoice.Totals.TaxRate),
		decimalToNumeric(invoice.Totals.Tax), decimalToNumeric(invoice.Totals.Total),
		decimalToNumeric(invoice.AmountPaid), string(invoice.Status),
		timeToPgTimestamptz(invoice.IssuedAt), timeToPgTimestamptz(invoice.DueAt),
		timePtrToPgTimestamptz(invoice.PaidAt), invoice.Notes,
		timeToPgTimestamptz(invoice.CreatedAt), timeToPgTimestamptz(invoice.UpdatedAt),
	)
	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)

	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// UpdatePaidTx updates payment state inside the ledger transaction.
func (r *InvoiceRepository) UpdatePaidTx(ctx context.Context, tx usecase.Transaction, id string, amountPaid decimal.Decimal, status domain.InvoiceStatus, paidAt *time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE invoices
		SET amount_paid = $2, status = $3, paid_at = $4, updated_at = now()
		WHERE id = $1`,
		id, decimalToNumeric(amountPaid), string(status), timePtrToPgTimestamptz(paidAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// List lists invoices, newest first.
func (r *InvoiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvoices(rows)
}

// ListByClient returns all invoices of one client, oldest due first.
func (r *InvoiceRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE client_id = $1 ORDER BY due_at`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]*domain.Invoice, error) {
	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv                           domain.Invoice
		items                         []byte
		subtotal, taxRate, tax, total pgtype.Numeric
		amountPaid                    pgtype.Numeric
		status                        string
		paidAt                        pgtype.Timestamptz
	)
	err := row.Scan(&inv.ID, &inv.Number, &inv.OrderID, &inv.ClientID, &inv.ClientName, &items,
		&subtotal, &taxRate, &tax, &total, &amountPaid, &status,
		&inv.IssuedAt, &inv.DueAt, &paidAt, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	inv.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	inv.Totals = domain.Totals{
		Subtotal: numericToDecimal(subtotal),
		TaxRate:  numericToDecimal(taxRate),
		Tax:      numericToDecimal(tax),
		Total:    numericToDecimal(total),
	}
	inv.AmountPaid = numericToDecimal(amountPaid)
	inv.Status = domain.InvoiceStatus(status)
	inv.PaidAt = pgTimestamptzToPtr(paidAt)
	return &inv, nil
}
