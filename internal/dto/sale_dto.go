package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProcessSaleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	// CustomerEmail: optional — when present, the receipt worker mails the
	// PDF ticket after the sale commits.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = all dates
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Receipt ─────────────────────────────────────────────────────────────────

// Receipt is the artifact handed back after a committed sale. It is not
// persisted; the sale record is the durable fact, this is for display/export.
type Receipt struct {
	SaleID    string          `json:"sale_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"created_at"`
}

// Text renders the receipt as a plain-text ticket suitable for download or
// for the body of a receipt email.
func (r Receipt) Text() string {
	var b strings.Builder
	b.WriteString("STOCKROOM SALE RECEIPT\n")
	b.WriteString(strings.Repeat("-", 32) + "\n")
	fmt.Fprintf(&b, "Receipt:  %s\n", r.SaleID)
	fmt.Fprintf(&b, "Date:     %s\n", r.CreatedAt)
	fmt.Fprintf(&b, "Product:  %s\n", r.Product)
	fmt.Fprintf(&b, "Quantity: %d x $%s\n", r.Quantity, r.UnitPrice.StringFixed(2))
	b.WriteString(strings.Repeat("-", 32) + "\n")
	fmt.Fprintf(&b, "TOTAL:    $%s\n", r.Total.StringFixed(2))
	return b.String()
}
