package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// SettingsRepository implements usecase.SettingsRepository. Settings is
// a single-row table; id is fixed at 1.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get reads the settings row.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT company_name, company_tax_id, company_address, company_email, company_phone,
			currency, default_tax_rate, auto_numbering, updated_at
		FROM settings WHERE id = 1`)

	var (
		s    domain.Settings
		rate pgtype.Numeric
	)
	err := row.Scan(&s.CompanyName, &s.CompanyTaxID, &s.CompanyAddress, &s.CompanyEmail,
		&s.CompanyPhone, &s.Currency, &rate, &s.AutoNumbering, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	s.DefaultTaxRate = numericToDecimal(rate)
	return &s, nil
}

// Save upserts the settings row.
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settings (id, company_name, company_tax_id, company_address, company_email,
			company_phone, currency, default_tax_rate, auto_numbering, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_tax_id = EXCLUDED.company_tax_id,
			company_address = EXCLUDED.company_address,
			company_email = EXCLUDED.company_email,
			company_phone = EXCLUDED.company_phone,
			currency = EXCLUDED.currency,
			default_tax_rate = EXCLUDED.default_tax_rate,
			auto_numbering = EXCLUDED.auto_numbering,
			updated_at = EXCLUDED.updated_at`,
		settings.CompanyName, settings.CompanyTaxID, settings.CompanyAddress,
		settings.CompanyEmail, settings.CompanyPhone, settings.Currency,
		decimalToNumeric(settings.DefaultTaxRate), settings.AutoNumbering,
		timeToPgTimestamptz(settings.UpdatedAt),
	)
	return err
}
