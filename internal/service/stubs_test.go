package service_test

// In-memory stub repositories shared by the service unit tests. They ignore
// the *gorm.DB tx handle (the services run in nil-DB transaction mode) and
// guard all state behind one mutex so the concurrency tests are meaningful.

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category
	products   map[uuid.UUID]*model.Product
	sales      map[uuid.UUID]*model.Sale
}

func newStubStore() *stubStore {
	return &stubStore{
		categories: make(map[uuid.UUID]*model.Category),
		products:   make(map[uuid.UUID]*model.Product),
		sales:      make(map[uuid.UUID]*model.Sale),
	}
}

func (s *stubStore) seedCategory(name string) *model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &model.Category{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	s.categories[c.ID] = c
	return c
}

func (s *stubStore) seedProduct(name string, quantity int, price float64, categoryID uuid.UUID) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  decimal.NewFromFloat(price),
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
	}
	s.products[p.ID] = p
	return p
}

func (s *stubStore) salesFor(productID uuid.UUID) []*model.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Sale
	for _, sale := range s.sales {
		if sale.ProductID == productID {
			out = append(out, sale)
		}
	}
	return out
}

// ── CategoryRepository stub ──────────────────────────────────────────────────

type stubCategoryRepo struct{ store *stubStore }

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.store.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Category
	for _, c := range r.store.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, p := range r.store.products {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r *stubCategoryRepo) DeleteCascadeTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for pid, p := range r.store.products {
		if p.CategoryID == id {
			delete(r.store.products, pid)
			removed++
		}
	}
	delete(r.store.categories, id)
	return removed, nil
}

func (r *stubCategoryRepo) DB() *gorm.DB { return nil }

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct{ store *stubStore }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.store.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	if c, ok := r.store.categories[p.CategoryID]; ok {
		cc := *c
		cp.Category = &cc
	}
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Product
	for _, p := range r.store.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		cp := *p
		if c, ok := r.store.categories[p.CategoryID]; ok {
			cc := *c
			cp.Category = &cc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

// DecrementStockTx mirrors the guarded update: the decrement only happens
// when enough stock remains, atomically under the store lock.
func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok || p.Quantity < qty {
		return 0, nil
	}
	p.Quantity -= qty
	return 1, nil
}

func (r *stubProductRepo) BalanceRows(_ context.Context) ([]repository.ProductBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var rows []repository.ProductBalance
	for _, p := range r.store.products {
		sold := 0
		for _, sale := range r.store.sales {
			if sale.ProductID == p.ID {
				sold += sale.Quantity
			}
		}
		rows = append(rows, repository.ProductBalance{ID: p.ID, Name: p.Name, Quantity: p.Quantity, Sold: sold})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Sold > rows[j].Sold })
	return rows, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	store *stubStore
	// failCreate forces the append step to fail so tests can observe that a
	// failed commit yields an error and no receipt.
	failCreate bool
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if r.failCreate {
		return errors.New("simulated append failure")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	cp := *s
	r.store.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	all, err := r.ListAll(context.Background())
	return all, int64(len(all)), err
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]model.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.Sale
	for _, s := range r.store.sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubSaleRepo) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, s := range r.store.sales {
		total = total.Add(s.Total)
	}
	return total, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)
