package dto

import "github.com/google/uuid"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Description *string `json:"description"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
}

// CategoryDetailResponse includes the number of products the category owns,
// so a client can warn the user before an irreversible cascading delete.
type CategoryDetailResponse struct {
	CategoryResponse
	ProductCount int64 `json:"product_count"`
}

// DeleteCategoryResponse reports how many products the cascade removed.
type DeleteCategoryResponse struct {
	ProductsRemoved int64 `json:"products_removed"`
}
