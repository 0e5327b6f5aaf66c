package repository

import (
	"context"

	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductBalance is one row of the grouped balance query: current stock plus
// cumulative units sold, keyed by product id.
type ProductBalance struct {
	ID       uuid.UUID
	Name     string
	Quantity int
	Sold     int
}

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)

	// DecrementStockTx applies a guarded decrement: the update only matches
	// when quantity >= qty, so stock can never go negative and two concurrent
	// sales cannot both take the same units. Returns rows affected.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error)

	// BalanceRows joins products with their cumulative sold units.
	BalanceRows(ctx context.Context) ([]ProductBalance, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := tx.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *productRepo) BalanceRows(ctx context.Context) ([]ProductBalance, error) {
	var rows []ProductBalance
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.id, p.name, p.quantity, COALESCE(SUM(s.quantity), 0) AS sold").
		Joins("LEFT JOIN sales s ON s.product_id = p.id").
		Group("p.id, p.name, p.quantity").
		Order("sold DESC, p.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
