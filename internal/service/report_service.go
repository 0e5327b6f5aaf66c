package service

import (
	"context"
	"encoding/json"
	"time"

	"stockroom/internal/dto"
	"stockroom/internal/repository"

	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "reports:summary"
const summaryCacheTTL = 60 * time.Second

// ReportService computes derived views over the ledger. Nothing here is
// stored: the balance is defined algebraically from current stock and the
// sale log, so it is always consistent no matter how many sales occurred.
type ReportService interface {
	Balance(ctx context.Context) ([]dto.BalanceRow, error)
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	rdb         *redis.Client
}

func NewReportService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, rdb *redis.Client) ReportService {
	return &reportService{productRepo: productRepo, saleRepo: saleRepo, rdb: rdb}
}

// Balance returns one row per existing product: remaining stock, cumulative
// units sold, and originally_stocked = remaining + sold. Rows are keyed and
// joined by product id, never by name.
func (s *reportService) Balance(ctx context.Context) ([]dto.BalanceRow, error) {
	rows, err := s.productRepo.BalanceRows(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BalanceRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.BalanceRow{
			ProductID:         r.ID.String(),
			Product:           r.Name,
			Remaining:         r.Quantity,
			Sold:              r.Sold,
			OriginallyStocked: r.Quantity + r.Sold,
		})
	}
	return result, nil
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	// Try cache first — the summary is read on every dashboard load.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var resp dto.SummaryResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	revenue, err := s.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.productRepo.BalanceRows(ctx)
	if err != nil {
		return nil, err
	}

	inStock, sold := 0, 0
	for _, r := range rows {
		inStock += r.Quantity
		sold += r.Sold
	}

	resp := &dto.SummaryResponse{
		TotalRevenue: revenue,
		UnitsInStock: inStock,
		UnitsSold:    sold,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, summaryCacheKey, b, summaryCacheTTL).Err()
		}
	}
	return resp, nil
}
