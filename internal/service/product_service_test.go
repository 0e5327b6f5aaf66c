package service_test

import (
	"context"
	"testing"

	"stockroom/internal/dto"
	"stockroom/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture(t *testing.T) (*stubStore, service.ProductService) {
	t.Helper()
	store := newStubStore()
	svc := service.NewProductService(
		&stubProductRepo{store: store},
		&stubCategoryRepo{store: store},
	)
	return store, svc
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	store, svc := newProductFixture(t)

	cat := store.seedCategory("Tools")
	resp, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:       "Hammer",
		Quantity:   10,
		UnitPrice:  decimal.NewFromFloat(5.00),
		CategoryID: cat.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hammer", resp.Name)
	assert.Equal(t, 10, resp.Quantity)
	assert.Equal(t, cat.ID.String(), resp.CategoryID)
	assert.Equal(t, "Tools", resp.Category)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	_, svc := newProductFixture(t)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Hammer",
		Quantity:   10,
		UnitPrice:  decimal.NewFromFloat(5.00),
		CategoryID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, service.ErrUnknownCategory)
}

func TestCreateProduct_Validation(t *testing.T) {
	ctx := context.Background()
	store, svc := newProductFixture(t)
	cat := store.seedCategory("Tools")

	cases := []struct {
		name  string
		req   dto.CreateProductRequest
		field string
	}{
		{
			name:  "empty name",
			req:   dto.CreateProductRequest{Name: "  ", Quantity: 1, UnitPrice: decimal.NewFromInt(1), CategoryID: cat.ID.String()},
			field: "name",
		},
		{
			name:  "negative quantity",
			req:   dto.CreateProductRequest{Name: "Hammer", Quantity: -1, UnitPrice: decimal.NewFromInt(1), CategoryID: cat.ID.String()},
			field: "quantity",
		},
		{
			name:  "negative price",
			req:   dto.CreateProductRequest{Name: "Hammer", Quantity: 1, UnitPrice: decimal.NewFromFloat(-0.01), CategoryID: cat.ID.String()},
			field: "unit_price",
		},
		{
			name:  "malformed category id",
			req:   dto.CreateProductRequest{Name: "Hammer", Quantity: 1, UnitPrice: decimal.NewFromInt(1), CategoryID: "nope"},
			field: "category_id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestListProducts_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	store, svc := newProductFixture(t)

	cat := store.seedCategory("Tools")
	store.seedProduct("Claw Hammer", 10, 5.00, cat.ID)
	store.seedProduct("Sledgehammer", 2, 25.00, cat.ID)
	store.seedProduct("Wrench", 4, 12.50, cat.ID)

	resp, err := svc.List(ctx, dto.ProductFilter{Name: "HAMMER"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	names := []string{resp.Data[0].Name, resp.Data[1].Name}
	assert.ElementsMatch(t, []string{"Claw Hammer", "Sledgehammer"}, names)
	for _, p := range resp.Data {
		assert.Equal(t, "Tools", p.Category)
	}
}

func TestDeleteProduct_KeepsSales(t *testing.T) {
	ctx := context.Background()
	store, svc := newProductFixture(t)
	saleSvc := service.NewSaleService(
		&stubSaleRepo{store: store},
		&stubProductRepo{store: store},
		nil,
	)

	cat := store.seedCategory("Tools")
	hammer := store.seedProduct("Hammer", 10, 5.00, cat.ID)

	_, err := saleSvc.ProcessSale(ctx, dto.ProcessSaleRequest{
		ProductID: hammer.ID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, hammer.ID))
	_, ok := store.products[hammer.ID]
	assert.False(t, ok)

	// The sale outlives the product, with name and price frozen at sale time.
	sales := store.salesFor(hammer.ID)
	require.Len(t, sales, 1)
	assert.Equal(t, "Hammer", sales[0].ProductName)
	assert.True(t, sales[0].Total.Equal(decimal.NewFromFloat(15.00)))
}

func TestDeleteProduct_Unknown(t *testing.T) {
	_, svc := newProductFixture(t)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUnknownProduct)
}
