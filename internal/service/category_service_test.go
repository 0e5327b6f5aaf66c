package service_test

import (
	"context"
	"testing"

	"stockroom/internal/dto"
	"stockroom/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture(t *testing.T) (*stubStore, service.CategoryService) {
	t.Helper()
	store := newStubStore()
	return store, service.NewCategoryService(&stubCategoryRepo{store: store})
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	_, svc := newCategoryFixture(t)

	desc := "hand tools and fasteners"
	resp, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Tools", Description: &desc})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Tools", resp.Name)
	require.NotNil(t, resp.Description)
	assert.Equal(t, desc, *resp.Description)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	ctx := context.Background()
	_, svc := newCategoryFixture(t)

	_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	// Duplicate detection is case-insensitive.
	_, err = svc.Create(ctx, dto.CreateCategoryRequest{Name: "tools"})
	assert.ErrorIs(t, err, service.ErrDuplicateName)
}

func TestCreateCategory_EmptyName(t *testing.T) {
	ctx := context.Background()
	_, svc := newCategoryFixture(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: name})
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
		assert.Equal(t, "name", verr.Field)
	}
}

func TestGetCategory_ReportsProductCount(t *testing.T) {
	ctx := context.Background()
	store, svc := newCategoryFixture(t)

	cat := store.seedCategory("Tools")
	store.seedProduct("Hammer", 10, 5.00, cat.ID)
	store.seedProduct("Wrench", 4, 12.50, cat.ID)

	detail, err := svc.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tools", detail.Name)
	assert.Equal(t, int64(2), detail.ProductCount)
}

func TestDeleteCategory_CascadesToOwnProductsOnly(t *testing.T) {
	ctx := context.Background()
	store, svc := newCategoryFixture(t)

	tools := store.seedCategory("Tools")
	paint := store.seedCategory("Paint")
	store.seedProduct("Hammer", 10, 5.00, tools.ID)
	store.seedProduct("Wrench", 4, 12.50, tools.ID)
	roller := store.seedProduct("Roller", 6, 3.75, paint.ID)

	removed, err := svc.Delete(ctx, tools.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	// The other category and its product are untouched.
	_, ok := store.categories[tools.ID]
	assert.False(t, ok)
	_, ok = store.categories[paint.ID]
	assert.True(t, ok)
	_, ok = store.products[roller.ID]
	assert.True(t, ok)
}

func TestDeleteCategory_KeepsSaleRecords(t *testing.T) {
	ctx := context.Background()
	store, catSvc := newCategoryFixture(t)
	saleSvc := service.NewSaleService(
		&stubSaleRepo{store: store},
		&stubProductRepo{store: store},
		nil,
	)

	tools := store.seedCategory("Tools")
	hammer := store.seedProduct("Hammer", 10, 5.00, tools.ID)

	_, err := saleSvc.ProcessSale(ctx, dto.ProcessSaleRequest{
		ProductID: hammer.ID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	removed, err := catSvc.Delete(ctx, tools.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// The cascade stops at products: the sale survives with its snapshot.
	sales := store.salesFor(hammer.ID)
	require.Len(t, sales, 1)
	assert.Equal(t, "Hammer", sales[0].ProductName)
}

func TestDeleteCategory_Unknown(t *testing.T) {
	_, svc := newCategoryFixture(t)

	_, err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUnknownCategory)
}
