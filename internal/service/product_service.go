package service

import (
	"context"
	"errors"
	"strings"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// Delete removes the product. Sale records referencing it are retained
	// with their original snapshot price and total — keeping historical
	// revenue intact is policy, not an oversight.
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo}
}

func mapProduct(p model.Product) *dto.ProductResponse {
	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}
	return &dto.ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		CategoryID: p.CategoryID.String(),
		Category:   categoryName,
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if req.UnitPrice.IsNegative() {
		return nil, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, &ValidationError{Field: "category_id", Reason: "must be a valid UUID"}
	}

	// A product cannot be created while its category does not exist.
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	p := &model.Product{
		Name:       name,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		CategoryID: categoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Category = category
	return mapProduct(*p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}
	return mapProduct(*p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *mapProduct(p))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownProduct
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
