package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// DeliveryNoteRepository implements usecase.DeliveryNoteRepository.
type DeliveryNoteRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryNoteRepository creates a new DeliveryNoteRepository.
func NewDeliveryNoteRepository(pool *pgxpool.Pool) *DeliveryNoteRepository {
	return &DeliveryNoteRepository{pool: pool}
}

const deliveryNoteColumns = `id, number, order_id, invoice_id, client_id, client_name,
	items, carrier, status, issued_at, delivered_at, notes, created_at, updated_at`

// Create inserts a new delivery note.
func (r *DeliveryNoteRepository) Create(ctx context.Context, note *domain.DeliveryNote) error {
	items, err := itemsToJSON(note.Items)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO delivery_notes (`+deliveryNoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		note.ID, note.Number, note.OrderID, note.InvoiceID, note.ClientID, note.ClientName,
		items, note.Carrier, string(note.Status), timeToPgTimestamptz(note.IssuedAt),
		timePtrToPgTimestamptz(note.DeliveredAt), note.Notes,
		timeToPgTimestamptz(note.CreatedAt), timeToPgTimestamptz(note.UpdatedAt),
	)
	return err
}

// GetByID retrieves a delivery note by ID.
func (r *DeliveryNoteRepository) GetByID(ctx context.Context, id string) (*domain.DeliveryNote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+deliveryNoteColumns+` FROM delivery_notes WHERE id = $1`, id)

	note, err := scanDeliveryNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDeliveryNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// UpdateStatus moves a delivery note to a new status, stamping the
// delivery time when set.
func (r *DeliveryNoteRepository) UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus, deliveredAt *time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_notes
		SET status = $2, delivered_at = $3, updated_at = now()
		WHERE id = $1`,
		id, string(status), timePtrToPgTimestamptz(deliveredAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDeliveryNoteNotFound
	}
	return nil
}

// List lists delivery notes, newest first.
func (r *DeliveryNoteRepository) List(ctx context.Context, limit, offset int) ([]*domain.DeliveryNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+deliveryNoteColumns+` FROM delivery_notes
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*domain.DeliveryNote, 0)
	for rows.Next() {
		note, err := scanDeliveryNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanDeliveryNote(row pgx.Row) (*domain.DeliveryNote, error) {
	var (
		n           domain.DeliveryNote
		items       []byte
		status      string
		deliveredAt pgtype.Timestamptz
	)
	err := row.Scan(&n.ID, &n.Number, &n.OrderID, &n.InvoiceID, &n.ClientID, &n.ClientName,
		&items, &n.Carrier, &status, &n.IssuedAt, &deliveredAt, &n.Notes, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	n.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	n.Status = domain.DeliveryStatus(status)
	n.DeliveredAt = pgTimestamptzToPtr(deliveredAt)
	return &n, nil
}
