package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
)

// ArticleUseCase handles the product/service catalog.
type ArticleUseCase struct {
	articleRepo ArticleRepository
	idGen       IDGenerator
}

// NewArticleUseCase creates a new ArticleUseCase.
func NewArticleUseCase(articleRepo ArticleRepository, idGen IDGenerator) *ArticleUseCase {
	return &ArticleUseCase{
		articleRepo: articleRepo,
		idGen:       idGen,
	}
}

// CreateArticleInput represents input for creating an article.
type CreateArticleInput struct {
	Code        string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Category    domain.ArticleCategory
}

// CreateArticle validates and persists a new catalog article.
func (uc *ArticleUseCase) CreateArticle(ctx context.Context, input CreateArticleInput) (*domain.Article, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArticleName)
	}
	if input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Category == "" {
		input.Category = domain.CategoryGeneral
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("unknown article category %q", input.Category)
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:          uc.idGen.Generate(),
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// GetArticle retrieves an article by ID.
func (uc *ArticleUseCase) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return uc.articleRepo.GetByID(ctx, id)
}

// UpdateArticleInput represents a partial article update.
type UpdateArticleInput struct {
	Code        *string
	Name        *string
	Description *string
	UnitPrice   *decimal.Decimal
	Category    *domain.ArticleCategory
}

// UpdateArticle applies a partial update to an article.
func (uc *ArticleUseCase) UpdateArticle(ctx context.Context, id string, input UpdateArticleInput) (*domain.Article, error) {
	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		article.Code = *input.Code
	}
	if input.Name != nil {
		article.Name = *input.Name
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		article.UnitPrice = *input.UnitPrice
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, fmt.Errorf("unknown article category %q", *input.Category)
		}
		article.Category = *input.Category
	}
	article.UpdatedAt = time.Now().UTC()

	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle removes an article from the catalog.
func (uc *ArticleUseCase) DeleteArticle(ctx context.Context, id string) error {
	if _, err := uc.articleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.articleRepo.Delete(ctx, id)
}

// ListArticles lists catalog articles with pagination.
func (uc *ArticleUseCase) ListArticles(ctx context.Context, limit, offset int) ([]*domain.Article, error) {
	limit, offset = clampPage(limit, offset)
	return uc.articleRepo.List(ctx, limit, offset)
}
