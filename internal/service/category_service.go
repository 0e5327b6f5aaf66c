package service

import (
	"context"
	"errors"
	"strings"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.CategoryDetailResponse, error)
	// Delete removes the category and, as an intentional destructive side
	// effect, every product referencing it. Returns the number of products
	// removed so callers can report what the cascade destroyed.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.CategoryResponse{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	// Check for duplicate name (case-insensitive, indexed lookup)
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, ErrDuplicateName
	}

	c := &model.Category{
		Name:        name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (dto.CategoryDetailResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryDetailResponse{}, ErrUnknownCategory
		}
		return dto.CategoryDetailResponse{}, err
	}
	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return dto.CategoryDetailResponse{}, err
	}
	return dto.CategoryDetailResponse{
		CategoryResponse: mapCategory(*c),
		ProductCount:     count,
	}, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnknownCategory
		}
		return 0, err
	}

	var removed int64
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		removed, err = s.repo.DeleteCascadeTx(tx, id)
		return err
	})
	if txErr != nil {
		return 0, txErr
	}

	log.Warn().
		Str("category", c.Name).
		Int64("products_removed", removed).
		Msg("category deleted with cascading products")
	return removed, nil
}
