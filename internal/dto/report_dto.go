package dto

import "github.com/shopspring/decimal"

// BalanceRow is one line of the inventory balance report.
// OriginallyStocked is derived algebraically: Remaining + Sold. It is never a
// separately maintained counter, so it stays correct regardless of how many
// sales have occurred.
type BalanceRow struct {
	ProductID         string `json:"product_id"`
	Product           string `json:"product"`
	Remaining         int    `json:"remaining"`
	Sold              int    `json:"sold"`
	OriginallyStocked int    `json:"originally_stocked"`
}

// SummaryResponse holds the dashboard headline numbers.
type SummaryResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	UnitsInStock int             `json:"units_in_stock"`
	UnitsSold    int             `json:"units_sold"`
	GeneratedAt  string          `json:"generated_at"`
}
