package service

import (
	"context"
	"errors"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the sale processor. A sale request moves through
// Requested → Validated → Committed, or Requested → Rejected; validation and
// commit happen inside one transaction, so no partial state is ever observable
// and a rejected attempt leaves the ledger byte-for-byte unchanged.
type SaleService interface {
	ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.Receipt, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	Export(ctx context.Context) ([]dto.SaleListItem, error)
}

type saleService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	dispatcher  *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{repo: repo, productRepo: productRepo, dispatcher: dispatcher}
}

// ProcessSale validates availability, then atomically decrements stock and
// appends the sale record. The decrement is guarded (quantity >= requested),
// so when two concurrent sales race for the same units, exactly one commits;
// the other observes zero affected rows and is rejected inside its own
// transaction, never having mutated anything.
func (s *saleService) ProcessSale(ctx context.Context, req dto.ProcessSaleRequest) (*dto.Receipt, error) {
	if req.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ValidationError{Field: "product_id", Reason: "must be a valid UUID"}
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownProduct
			}
			return err
		}
		if p.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		rows, err := s.productRepo.DecrementStockTx(tx, productID, req.Quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent sale took the stock between the read and the
			// guarded update. The caller must re-observe before retrying.
			return ErrInsufficientStock
		}

		// Price is snapshotted at commit time: later price changes never
		// retroactively alter historical revenue.
		sale = model.Sale{
			ProductID:   productID,
			ProductName: p.Name,
			Quantity:    req.Quantity,
			UnitPrice:   p.UnitPrice,
			Total:       p.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		return s.repo.CreateTx(tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	receipt := &dto.Receipt{
		SaleID:    sale.ID.String(),
		Product:   sale.ProductName,
		Quantity:  sale.Quantity,
		UnitPrice: sale.UnitPrice,
		Total:     sale.Total,
		CreatedAt: sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	// Receipt delivery runs after commit, best-effort — a failed enqueue
	// never un-commits the sale.
	if s.dispatcher != nil && req.CustomerEmail != nil && *req.CustomerEmail != "" {
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			SaleID:        sale.ID.String(),
			CustomerEmail: *req.CustomerEmail,
			ReceiptText:   receipt.Text(),
		})
	}
	return receipt, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for _, sale := range sales {
		items = append(items, mapSale(sale))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Export returns the full sale log, oldest first, for CSV download.
func (s *saleService) Export(ctx context.Context) ([]dto.SaleListItem, error) {
	sales, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleListItem, 0, len(sales))
	for _, sale := range sales {
		items = append(items, mapSale(sale))
	}
	return items, nil
}

func mapSale(s model.Sale) dto.SaleListItem {
	return dto.SaleListItem{
		ID:        s.ID.String(),
		ProductID: s.ProductID.String(),
		Product:   s.ProductName,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
