package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// NoteRepository implements usecase.NoteRepository.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

const noteColumns = `id, number, kind, invoice_id, client_id, client_name, reason,
	items, subtotal, tax_rate, tax, total, issued_at, created_at`

// CreateTx inserts a note inside the ledger transaction.
func (r *NoteRepository) CreateTx(ctx context.Context, tx usecase.Transaction, note *domain.Note) error {
	pgxTx := tx.(*Tx).PgxTx()

	items, err := itemsToJSON(note.Items)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		note.ID, note.Number, string(note.Kind), note.InvoiceID, note.ClientID, note.ClientName,
		note.Reason, items,
		decimalToNumeric(note.Totals.Subtotal), decimalToNumeric(note.Totals.TaxRate),
		decimalToNumeric(note.Totals.Tax), decimalToNumeric(note.Totals.Total),
		timeToPgTimestamptz(note.IssuedAt), timeToPgTimestamptz(note.CreatedAt),
	)
	return err
}

// GetByID retrieves a note by ID.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// List lists notes, newest first.
func (r *NoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+` FROM notes
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var (
		n                             domain.Note
		kind                          string
		items                         []byte
		subtotal, taxRate, tax, total pgtype.Numeric
	)
	err := row.Scan(&n.ID, &n.Number, &kind, &n.InvoiceID, &n.ClientID, &n.ClientName,
		&n.Reason, &items, &subtotal, &taxRate, &tax, &total, &n.IssuedAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}

	n.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	n.Kind = domain.NoteKind(kind)
	n.Totals = domain.Totals{
		Subtotal: numericToDecimal(subtotal),
		TaxRate:  numericToDecimal(taxRate),
		Tax:      numericToDecimal(tax),
		Total:    numericToDecimal(total),
	}
	return &n, nil
}
