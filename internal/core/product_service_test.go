package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/models"
)

func validCreateRequest() models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:           "Seto Mandarin",
		PricingOptions: []models.PricingOption{{Unit: "1box", Price: 25000}},
		StorageType:    models.StorageTypeChilled,
		SalesType:      models.SalesTypeInStock,
		InitialStock:   20,
		PublishMode:    models.PublishModeNow,
	}
}

func newProductServiceWithClock(repo *fakeProductRepo, now time.Time) *productService {
	svc := NewProductService(repo).(*productService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateProductPublishModes(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)

	tests := []struct {
		name          string
		mutate        func(*models.CreateProductRequest)
		wantStatus    models.ProductStatus
		wantPublished bool
		wantPublishAt time.Time
	}{
		{
			name:          "publish now",
			mutate:        func(r *models.CreateProductRequest) { r.PublishMode = models.PublishModeNow },
			wantStatus:    models.ProductStatusSelling,
			wantPublished: true,
			wantPublishAt: now,
		},
		{
			name:          "draft",
			mutate:        func(r *models.CreateProductRequest) { r.PublishMode = models.PublishModeDraft },
			wantStatus:    models.ProductStatusDraft,
			wantPublished: false,
			wantPublishAt: now,
		},
		{
			name: "scheduled",
			mutate: func(r *models.CreateProductRequest) {
				r.PublishMode = models.PublishModeScheduled
				r.PublishAt = &later
			},
			wantStatus:    models.ProductStatusScheduled,
			wantPublished: true,
			wantPublishAt: later,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newProductServiceWithClock(newFakeProductRepo(), now)
			req := validCreateRequest()
			tt.mutate(&req)

			product, err := svc.CreateProduct(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, product.Status)
			assert.Equal(t, tt.wantPublished, product.IsPublished)
			assert.Equal(t, tt.wantPublishAt, product.PublishAt)
			assert.NotEmpty(t, product.ID)
		})
	}
}

func TestCreateProductStockInitialization(t *testing.T) {
	now := time.Now()

	svc := newProductServiceWithClock(newFakeProductRepo(), now)
	req := validCreateRequest()
	product, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(20), product.Stock)
	assert.Equal(t, int64(20), product.InitialStock)

	req = validCreateRequest()
	req.SalesType = models.SalesTypePreOrder
	product, err = svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.UnlimitedStock, product.Stock)
	assert.Equal(t, models.UnlimitedStock, product.InitialStock)
}

func TestCreateProductValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(24 * time.Hour)
	pickup := now.Add(72 * time.Hour)

	tests := []struct {
		name   string
		mutate func(*models.CreateProductRequest)
	}{
		{
			name:   "no pricing options",
			mutate: func(r *models.CreateProductRequest) { r.PricingOptions = nil },
		},
		{
			name: "non-positive price",
			mutate: func(r *models.CreateProductRequest) {
				r.PricingOptions = []models.PricingOption{{Unit: "1box", Price: 0}}
			},
		},
		{
			name: "duplicate unit",
			mutate: func(r *models.CreateProductRequest) {
				r.PricingOptions = []models.PricingOption{
					{Unit: "1box", Price: 10000},
					{Unit: "1box", Price: 20000},
				}
			},
		},
		{
			name: "empty unit",
			mutate: func(r *models.CreateProductRequest) {
				r.PricingOptions = []models.PricingOption{{Unit: "", Price: 10000}}
			},
		},
		{
			name: "deadline after pickup",
			mutate: func(r *models.CreateProductRequest) {
				r.DeadlineDate = &pickup
				r.PickupDate = &deadline
			},
		},
		{
			name: "pickup after pickup deadline",
			mutate: func(r *models.CreateProductRequest) {
				r.PickupDate = &pickup
				r.PickupDeadlineDate = &deadline
			},
		},
		{
			name:   "negative initial stock",
			mutate: func(r *models.CreateProductRequest) { r.InitialStock = -5 },
		},
		{
			name:   "zero per-person limit",
			mutate: func(r *models.CreateProductRequest) { r.MaxOrderPerPerson = int64Ptr(0) },
		},
		{
			name:   "unknown sales type",
			mutate: func(r *models.CreateProductRequest) { r.SalesType = "BACKORDER" },
		},
		{
			name:   "scheduled without publishAt",
			mutate: func(r *models.CreateProductRequest) { r.PublishMode = models.PublishModeScheduled },
		},
		{
			name:   "unknown publish mode",
			mutate: func(r *models.CreateProductRequest) { r.PublishMode = "later" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newProductServiceWithClock(newFakeProductRepo(), now)
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreateProduct(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidProductInput)
		})
	}
}

func TestUpdateProductMergesAndRevalidates(t *testing.T) {
	repo := newFakeProductRepo(stockProduct("p1", 10))
	svc := NewProductService(repo)

	name := "Renamed Box"
	stock := int64(7)
	product, err := svc.UpdateProduct(context.Background(), "p1", models.UpdateProductRequest{
		Name:  &name,
		Stock: &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Box", product.Name)
	assert.Equal(t, int64(7), product.Stock)
	// Untouched fields survive the merge.
	assert.Len(t, product.PricingOptions, 2)

	// A partial edit cannot break the pricing invariant.
	empty := []models.PricingOption{}
	_, err = svc.UpdateProduct(context.Background(), "p1", models.UpdateProductRequest{
		PricingOptions: &empty,
	})
	assert.ErrorIs(t, err, ErrInvalidProductInput)
}

func TestUpdateProductStatusControlsPublication(t *testing.T) {
	repo := newFakeProductRepo(stockProduct("p1", 10))
	svc := NewProductService(repo)

	draft := models.ProductStatusDraft
	product, err := svc.UpdateProduct(context.Background(), "p1", models.UpdateProductRequest{Status: &draft})
	require.NoError(t, err)
	assert.False(t, product.IsPublished)

	selling := models.ProductStatusSelling
	product, err = svc.UpdateProduct(context.Background(), "p1", models.UpdateProductRequest{Status: &selling})
	require.NoError(t, err)
	assert.True(t, product.IsPublished)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	name := "x"
	_, err := svc.UpdateProduct(context.Background(), "ghost", models.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRequestEncore(t *testing.T) {
	past := publishedProduct("p1", models.ProductStatusEnded)
	repo := newFakeProductRepo(past)
	svc := NewProductService(repo)

	require.NoError(t, svc.RequestEncore(context.Background(), "u1", "p1"))
	assert.Equal(t, int64(1), repo.products["p1"].EncoreCount)

	// Same user voting again conflicts; another user still counts.
	err := svc.RequestEncore(context.Background(), "u1", "p1")
	assert.ErrorIs(t, err, ErrAlreadyRequested)
	assert.Equal(t, int64(1), repo.products["p1"].EncoreCount)

	require.NoError(t, svc.RequestEncore(context.Background(), "u2", "p1"))
	assert.Equal(t, int64(2), repo.products["p1"].EncoreCount)

	err = svc.RequestEncore(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo(stockProduct("p1", 10))
	svc := NewProductService(repo)

	require.NoError(t, svc.DeleteProduct(context.Background(), "p1"))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), "p1"), ErrProductNotFound)
}
