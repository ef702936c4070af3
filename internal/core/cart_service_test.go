package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/models"
)

func stockProduct(id string, stock int64) *models.Product {
	return &models.Product{
		ID:   id,
		Name: "Hallabong Box",
		PricingOptions: []models.PricingOption{
			{Unit: "1box", Price: 25000},
			{Unit: "2box", Price: 48000},
		},
		ImageURLs: []string{"https://img.example/hallabong.jpg"},
		SalesType: models.SalesTypeInStock,
		Stock:     stock,
	}
}

func TestCartServiceAddItemSnapshotsProduct(t *testing.T) {
	store := newMemCache()
	svc := NewCartService(store, newFakeProductRepo(stockProduct("p1", 10)))

	cart, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{
		ProductID: "p1", SelectedUnit: "2box", Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := cart.Items[0]
	assert.Equal(t, "Hallabong Box", line.ProductName)
	assert.Equal(t, int64(48000), line.UnitPrice)
	assert.Equal(t, "https://img.example/hallabong.jpg", line.ImageURL)
	assert.Equal(t, int64(10), line.AvailableStock)
	assert.Equal(t, models.SalesTypeInStock, line.SalesType)

	// Mutation persisted: a fresh read sees the same line.
	reloaded, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, reloaded.Items)
}

func TestCartServiceAddItemValidation(t *testing.T) {
	limited := stockProduct("p2", 10)
	limited.MaxOrderPerPerson = int64Ptr(2)

	tests := []struct {
		name    string
		req     models.AddCartItemRequest
		wantErr error
	}{
		{
			name:    "unknown product",
			req:     models.AddCartItemRequest{ProductID: "ghost", SelectedUnit: "1box", Quantity: 1},
			wantErr: ErrProductNotFound,
		},
		{
			name:    "unknown unit",
			req:     models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "3box", Quantity: 1},
			wantErr: ErrUnknownUnit,
		},
		{
			name:    "quantity exceeds stock",
			req:     models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "1box", Quantity: 4},
			wantErr: ErrQuantityExceedsStock,
		},
		{
			name:    "quantity exceeds per-person limit",
			req:     models.AddCartItemRequest{ProductID: "p2", SelectedUnit: "1box", Quantity: 3},
			wantErr: ErrQuantityExceedsLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCartService(newMemCache(), newFakeProductRepo(stockProduct("p1", 3), limited))
			_, err := svc.AddItem(context.Background(), "u1", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCartServiceAddItemUnlimitedStockSentinel(t *testing.T) {
	// An IN_STOCK product with stock -1 has no cap; the add path must not
	// read the sentinel as a quantity of minus one.
	svc := NewCartService(newMemCache(), newFakeProductRepo(stockProduct("p1", models.UnlimitedStock)))

	cart, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{
		ProductID: "p1", SelectedUnit: "1box", Quantity: 50,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(50), cart.Items[0].Quantity)
	assert.Equal(t, models.UnlimitedStock, cart.Items[0].AvailableStock)
}

func TestCartServiceMergeSkipsCombinedRevalidation(t *testing.T) {
	// Each add validates only its own delta against stock. Two adds of 2
	// against stock 3 merge to 4; the combined total is caught later, at
	// checkout, by the transactional reservation.
	svc := NewCartService(newMemCache(), newFakeProductRepo(stockProduct("p1", 3)))

	_, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "1box", Quantity: 2})
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "1box", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(4), cart.Items[0].Quantity)
}

func TestCartServiceCorruptPayloadDegradesToEmpty(t *testing.T) {
	store := newMemCache()
	store.data["cart:u1"] = "{not json"
	svc := NewCartService(store, newFakeProductRepo())

	cart, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartServiceChangeQuantityAndRemovePersist(t *testing.T) {
	store := newMemCache()
	svc := NewCartService(store, newFakeProductRepo(stockProduct("p1", 10)))

	_, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "1box", Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.ChangeQuantity(context.Background(), "u1", models.ChangeCartQuantityRequest{ProductID: "p1", SelectedUnit: "1box", Delta: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)

	cart, err = svc.RemoveItem(context.Background(), "u1", models.RemoveCartItemRequest{ProductID: "p1", SelectedUnit: "1box"})
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartServiceClearCartDeletesKey(t *testing.T) {
	store := newMemCache()
	svc := NewCartService(store, newFakeProductRepo(stockProduct("p1", 10)))

	_, err := svc.AddItem(context.Background(), "u1", models.AddCartItemRequest{ProductID: "p1", SelectedUnit: "1box", Quantity: 1})
	require.NoError(t, err)
	require.Contains(t, store.data, "cart:u1")

	require.NoError(t, svc.ClearCart(context.Background(), "u1"))
	assert.NotContains(t, store.data, "cart:u1")
}
