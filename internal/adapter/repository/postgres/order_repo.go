package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// execer is satisfied by both the pool and a pgx transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.insert(ctx, r.pool, order)
}

// CreateTx inserts the order inside the quote-conversion transaction.
func (r *OrderRepository) CreateTx(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	return r.insert(ctx, tx.(*Tx).PgxTx(), order)
}

func (r *OrderRepository) insert(ctx context.Context, db execer, order *domain.Order) error {
	items, err := itemsToJSON(order.Items)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
		INSERT INTO orders (id, number, client_id, client_name, items, subtotal, tax_rate, tax, total,
			status, ordered_at, delivery_at, quote_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		order.ID, order.Number, order.ClientID, order.ClientName, items,
		decimalToNumeric(order.Totals.Subtotal), decimalToNumeric(order.Totals.TaxRate),
		decimalToNumeric(order.Totals.Tax), decimalToNumeric(order.Totals.Total),
		string(order.Status), timeToPgTimestamptz(order.OrderedAt),
		timePtrToPgTimestamptz(order.DeliveryAt), order.QuoteID, order.Notes,
		timeToPgTimestamptz(order.CreatedAt), timeToPgTimestamptz(order.UpdatedAt),
	)
	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, number, client_id, client_name, items, subtotal, tax_rate, tax, total,
			status, ordered_at, delivery_at, quote_id, notes, created_at, updated_at
		FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// List lists orders, newest first.
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, number, client_id, client_name, items, subtotal, tax_rate, tax, total,
			status, ordered_at, delivery_at, quote_id, notes, created_at, updated_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                             domain.Order
		items                         []byte
		subtotal, taxRate, tax, total pgtype.Numeric
		status                        string
		deliveryAt                    pgtype.Timestamptz
	)
	err := row.Scan(&o.ID, &o.Number, &o.ClientID, &o.ClientName, &items,
		&subtotal, &taxRate, &tax, &total, &status, &o.OrderedAt, &deliveryAt,
		&o.QuoteID, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	o.Totals = domain.Totals{
		Subtotal: numericToDecimal(subtotal),
		TaxRate:  numericToDecimal(taxRate),
		Tax:      numericToDecimal(tax),
		Total:    numericToDecimal(total),
	}
	o.Status = domain.OrderStatus(status)
	o.DeliveryAt = pgTimestamptzToPtr(deliveryAt)
	return &o, nil
}
