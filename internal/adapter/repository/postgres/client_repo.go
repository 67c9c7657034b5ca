package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create inserts a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clients (id, name, email, phone, address, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.TaxID,
		timeToPgTimestamptz(client.CreatedAt), timeToPgTimestamptz(client.UpdatedAt),
	)
	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, tax_id, created_at, updated_at
		FROM clients WHERE id = $1`, id)

	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// Update rewrites all mutable client fields.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, tax_id = $6, updated_at = $7
		WHERE id = $1`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.TaxID,
		timeToPgTimestamptz(client.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Delete removes a client.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// List lists clients ordered by name.
func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, address, tax_id, created_at, updated_at
		FROM clients ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
