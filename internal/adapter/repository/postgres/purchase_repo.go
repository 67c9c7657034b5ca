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

// PurchaseRepository implements usecase.PurchaseRepository.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

const purchaseColumns = `id, number, supplier, category, items,
	subtotal, tax_rate, tax, total, payment, bought_at, paid_at, notes, created_at, updated_at`

// Create inserts a new purchase.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	items, err := itemsToJSON(purchase.Items)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		purchase.ID, purchase.Number, purchase.Supplier, string(purchase.Category), items,
		decimalToNumeric(purchase.Totals.Subtotal), decimalToNumeric(purchase.Totals.TaxRate),
		decimalToNumeric(purchase.Totals.Tax), decimalToNumeric(purchase.Totals.Total),
		string(purchase.Payment), timeToPgTimestamptz(purchase.BoughtAt),
		timePtrToPgTimestamptz(purchase.PaidAt), purchase.Notes,
		timeToPgTimestamptz(purchase.CreatedAt), timeToPgTimestamptz(purchase.UpdatedAt),
	)
	return err
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)

	purchase, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, err
	}
	return purchase, nil
}

// MarkPaid settles a purchase.
func (r *PurchaseRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE purchases
		SET payment = $2, paid_at = $3, updated_at = $3
		WHERE id = $1`,
		id, string(domain.PaymentDone), timeToPgTimestamptz(paidAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

// List lists purchases, newest first.
func (r *PurchaseRepository) List(ctx context.Context, limit, offset int) ([]*domain.Purchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+purchaseColumns+` FROM purchases
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]*domain.Purchase, 0)
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}
	return purchases, rows.Err()
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var (
		p                             domain.Purchase
		items                         []byte
		category, payment             string
		subtotal, taxRate, tax, total pgtype.Numeric
		paidAt                        pgtype.Timestamptz
	)
	err := row.Scan(&p.ID, &p.Number, &p.Supplier, &category, &items,
		&subtotal, &taxRate, &tax, &total, &payment, &p.BoughtAt, &paidAt,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Items, err = itemsFromJSON(items)
	if err != nil {
		return nil, err
	}
	p.Category = domain.ArticleCategory(category)
	p.Totals = domain.Totals{
		Subtotal: numericToDecimal(subtotal),
		TaxRate:  numericToDecimal(taxRate),
		Tax:      numericToDecimal(tax),
		Total:    numericToDecimal(total),
	}
	p.Payment = domain.PaymentState(payment)
	p.PaidAt = pgTimestamptzToPtr(paidAt)
	return &p, nil
}
