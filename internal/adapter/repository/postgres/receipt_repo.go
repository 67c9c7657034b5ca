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

// ReceiptRepository implements usecase.ReceiptRepository.
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

const receiptColumns = `id, number, client_id, client_name, amount, method,
	applied_invoices, received_at, notes, created_at`

// CreateTx inserts a receipt inside the ledger transaction.
func (r *ReceiptRepository) CreateTx(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	pgxTx := tx.(*Tx).PgxTx()

	applied := receipt.AppliedInvoices
	if applied == nil {
		applied = []string{}
	}

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO receipts (`+receiptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		receipt.ID, receipt.Number, receipt.ClientID, receipt.ClientName,
		decimalToNumeric(receipt.Amount), string(receipt.Method), applied,
		timeToPgTimestamptz(receipt.ReceivedAt), receipt.Notes,
		timeToPgTimestamptz(receipt.CreatedAt),
	)
	return err
}

// GetByID retrieves a receipt by ID.
func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE id = $1`, id)

	receipt, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}
	return receipt, nil
}

// List lists receipts, newest first.
func (r *ReceiptRepository) List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+receiptColumns+` FROM receipts
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := make([]*domain.Receipt, 0)
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

func scanReceipt(row pgx.Row) (*domain.Receipt, error) {
	var (
		rc     domain.Receipt
		amount pgtype.Numeric
		method string
	)
	err := row.Scan(&rc.ID, &rc.Number, &rc.ClientID, &rc.ClientName, &amount, &method,
		&rc.AppliedInvoices, &rc.ReceivedAt, &rc.Notes, &rc.CreatedAt)
	if err != nil {
		return nil, err
	}
	rc.Amount = numericToDecimal(amount)
	rc.Method = domain.PaymentMethod(method)
	return &rc, nil
}
