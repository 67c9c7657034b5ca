package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleCategory groups articles for filtering and purchase reports.
type ArticleCategory string

const (
	CategoryGeneral   ArticleCategory = "general"
	CategoryMaterials ArticleCategory = "materials"
	CategoryServices  ArticleCategory = "services"
	CategoryExpenses  ArticleCategory = "expenses"
)

// Valid reports whether c is a known category.
func (c ArticleCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryMaterials, CategoryServices, CategoryExpenses:
		return true
	}
	return false
}

// Article is a product or service offered by the business.
type Article struct {
	ID          string
	Code        string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Category    ArticleCategory
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
