package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository. Movements
// are insert-only; they are never updated or deleted.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// CreateTx inserts a movement inside the document's transaction.
func (r *MovementRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO movements (id, client_id, date, kind, document_number, description, debit, credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		movement.ID, movement.ClientID, timeToPgTimestamptz(movement.Date), string(movement.Kind),
		movement.DocumentNumber, movement.Description,
		decimalToNumeric(movement.Debit), decimalToNumeric(movement.Credit),
		timeToPgTimestamptz(movement.CreatedAt),
	)
	return err
}

// ListByClient returns all movements of one client, oldest first.
func (r *MovementRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, client_id, date, kind, document_number, description, debit, credit, created_at
		FROM movements WHERE client_id = $1
		ORDER BY date, created_at`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListAll returns every movement, oldest first.
func (r *MovementRepository) ListAll(ctx context.Context) ([]domain.Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, client_id, date, kind, document_number, description, debit, credit, created_at
		FROM movements
		ORDER BY date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	movements := make([]domain.Movement, 0)
	for rows.Next() {
		var (
			m             domain.Movement
			kind          string
			debit, credit pgtype.Numeric
		)
		if err := rows.Scan(&m.ID, &m.ClientID, &m.Date, &kind, &m.DocumentNumber,
			&m.Description, &debit, &credit, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Kind = domain.MovementKind(kind)
		m.Debit = numericToDecimal(debit)
		m.Credit = numericToDecimal(credit)
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
