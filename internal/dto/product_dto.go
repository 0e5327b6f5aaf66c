package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"        validate:"required,min=1,max=120"`
	Quantity   int             `json:"quantity"    validate:"min=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"min=0"`
	CategoryID string          `json:"category_id" validate:"required,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
// Name is a case-insensitive substring match.
type ProductFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
