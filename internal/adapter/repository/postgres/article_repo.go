package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// ArticleRepository implements usecase.ArticleRepository.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// Create inserts a new article.
func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO articles (id, code, name, description, unit_price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		article.ID, article.Code, article.Name, article.Description,
		decimalToNumeric(article.UnitPrice), string(article.Category),
		timeToPgTimestamptz(article.CreatedAt), timeToPgTimestamptz(article.UpdatedAt),
	)
	return err
}

// GetByID retrieves an article by ID.
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, code, name, description, unit_price, category, created_at, updated_at
		FROM articles WHERE id = $1`, id)

	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// Update rewrites all mutable article fields.
func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET code = $2, name = $3, description = $4, unit_price = $5, category = $6, updated_at = $7
		WHERE id = $1`,
		article.ID, article.Code, article.Name, article.Description,
		decimalToNumeric(article.UnitPrice), string(article.Category),
		timeToPgTimestamptz(article.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// Delete removes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// List lists articles ordered by name.
func (r *ArticleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, description, unit_price, category, created_at, updated_at
		FROM articles ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var (
		a        domain.Article
		price    pgtype.Numeric
		category string
	)
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &price, &category, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.UnitPrice = numericToDecimal(price)
	a.Category = domain.ArticleCategory(category)
	return &a, nil
}
