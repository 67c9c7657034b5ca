package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// QuoteRepository implements usecase.QuoteRepository.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

const quoteColumns = `id, number, client_id, client_name, items,
	subtotal, tax_rate, tax, total, status, validity_days, issued_at, notes, created_at, updated_at`

// Create inserts a new quote.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	items, err := itemsToJSON(quote.Items)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		quote.ID, quote.Number, quote.ClientID, quote.ClientName, items,
		decimalToNumeric(quote.Totals.Subtotal), decimalToNumeric(quote.Totals.TaxRate),
		decimalToNumeric(quote.Totals.Tax), decimalToNumeric(quote.Totals.Total),
		string(quote.Status), quote.ValidityDays, timeToPgTimestamptz(quote.IssuedAt),
		quote.Notes, timeToPgTimestamptz(quote.CreatedAt), timeToPgTimestamptz(quote.UpdatedAt),
	)
	return err
}

// GetByID retrieves a quote by ID.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return quote, nil
}

// UpdateStatus moves a quote to a new status.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// MarkConvertedTx flips an accepted quote to converted inside the
// conversion transaction. The status guard in the WHERE clause makes
// the flip a no-op when another conversion got there first, which
// surfaces as ErrQuoteNotConvertible.
func (r *QuoteRepository) MarkConvertedTx(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE quotes SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`,
		id, string(domain.QuoteConverted), timeToPgTimestamptz(updatedAt), string(domain.QuoteAccepted),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuoteNotConvertible
	}
	return nil
}

// List lists quotes, newest first.
func (r *QuoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]*domain.Quote, 0)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var (
		q                             domain.Quote
		items                         []byte
		subtotal, taxRate, tax, total pgtype.Numeric
		status                        string
	)
	err := row.Scan(&q.ID, &q.Number, &q.ClientID, &q.ClientName, &items,
		&subtotal, &taxRate, &tax, &total, &status, &q.ValidityDays,
		&q.IssuedAt, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}

	q.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	q.Totals = domain.Totals{
		Subtotal: numericToDecimal(subtotal),
		TaxRate:  numericToDecimal(taxRate),
		Tax:      numericToDecimal(tax),
		Total:    numericToDecimal(total),
	}
	q.Status = domain.QuoteStatus(status)
	return &q, nil
}
