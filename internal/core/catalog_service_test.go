package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

type fakeBannerRepo struct {
	banners []*models.Banner
	err     error
}

func (r *fakeBannerRepo) Create(ctx context.Context, banner *models.Banner) (string, error) {
	banner.ID = "banner-new"
	r.banners = append(r.banners, banner)
	return banner.ID, nil
}

func (r *fakeBannerRepo) ListActive(ctx context.Context) ([]*models.Banner, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Banner
	for _, b := range r.banners {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBannerRepo) ListAll(ctx context.Context) ([]*models.Banner, error) {
	return r.banners, r.err
}

func (r *fakeBannerRepo) Update(ctx context.Context, banner *models.Banner) error {
	for i, b := range r.banners {
		if b.ID == banner.ID {
			r.banners[i] = banner
			return nil
		}
	}
	return db.ErrNotFound
}

func (r *fakeBannerRepo) Delete(ctx context.Context, bannerID string) error {
	for i, b := range r.banners {
		if b.ID == bannerID {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (r *fakeBannerRepo) Reorder(ctx context.Context, orderedIDs []string) error {
	pos := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		pos[id] = i
	}
	for _, b := range r.banners {
		if p, ok := pos[b.ID]; ok {
			b.Order = p
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }

func publishedProduct(id string, status models.ProductStatus) *models.Product {
	return &models.Product{
		ID:             id,
		Name:           id,
		PricingOptions: []models.PricingOption{{Unit: "1box", Price: 10000}},
		SalesType:      models.SalesTypePreOrder,
		Stock:          models.UnlimitedStock,
		Status:         status,
		IsPublished:    true,
		PublishAt:      time.Now().Add(-24 * time.Hour),
	}
}

func TestListCatalogBucketing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	onsite := publishedProduct("onsite", models.ProductStatusSelling)
	onsite.IsAvailableForOnsiteSale = true
	onsite.SalesType = models.SalesTypeInStock
	onsite.Stock = 5

	// On-site availability wins even when the deadline would also match.
	onsiteWithDeadline := publishedProduct("onsite-deadline", models.ProductStatusSelling)
	onsiteWithDeadline.IsAvailableForOnsiteSale = true
	onsiteWithDeadline.SalesType = models.SalesTypeInStock
	onsiteWithDeadline.Stock = 2
	onsiteWithDeadline.DeadlineDate = timePtr(now.Add(48 * time.Hour))

	ongoing := publishedProduct("ongoing", models.ProductStatusSelling)
	ongoing.DeadlineDate = timePtr(now.Add(24 * time.Hour))

	additional := publishedProduct("additional", models.ProductStatusSelling)
	additional.SalesType = models.SalesTypeInStock
	additional.Stock = 3
	additional.DeadlineDate = timePtr(now.Add(-24 * time.Hour))
	additional.PickupDeadlineDate = timePtr(now.Add(24 * time.Hour))

	// Past the deadline with nothing left: falls through to past.
	soldOut := publishedProduct("sold-out", models.ProductStatusSelling)
	soldOut.SalesType = models.SalesTypeInStock
	soldOut.Stock = 0
	soldOut.DeadlineDate = timePtr(now.Add(-24 * time.Hour))
	soldOut.PickupDeadlineDate = timePtr(now.Add(24 * time.Hour))

	ended := publishedProduct("ended", models.ProductStatusEnded)

	draft := publishedProduct("draft", models.ProductStatusDraft)

	scheduledFuture := publishedProduct("scheduled-future", models.ProductStatusScheduled)
	scheduledFuture.PublishAt = now.Add(24 * time.Hour)

	scheduledDue := publishedProduct("scheduled-due", models.ProductStatusScheduled)
	scheduledDue.PublishAt = now.Add(-1 * time.Hour)

	bannerRepo := &fakeBannerRepo{banners: []*models.Banner{
		{ID: "b1", ImageURL: "https://img.example/b1.jpg", IsActive: true},
		{ID: "b2", ImageURL: "https://img.example/b2.jpg", IsActive: false},
	}}

	svc := NewCatalogService(newFakeProductRepo(
		onsite, onsiteWithDeadline, ongoing, additional, soldOut, ended, draft, scheduledFuture, scheduledDue,
	), bannerRepo)

	buckets, err := svc.ListCatalog(context.Background(), now)
	require.NoError(t, err)

	ids := func(products []*models.Product) []string {
		var out []string
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"onsite", "onsite-deadline"}, ids(buckets.OnsiteSale))
	assert.ElementsMatch(t, []string{"ongoing"}, ids(buckets.Ongoing))
	assert.ElementsMatch(t, []string{"additional"}, ids(buckets.AdditionalReservation))
	// Scheduled products whose publishAt has arrived fall through the bucket
	// checks like any other; this one has no deadline so it lands in past.
	assert.ElementsMatch(t, []string{"sold-out", "ended", "scheduled-due"}, ids(buckets.Past))

	// Drafts and not-yet-due schedules are excluded everywhere.
	all := append(append(append(ids(buckets.OnsiteSale), ids(buckets.Ongoing)...), ids(buckets.AdditionalReservation)...), ids(buckets.Past)...)
	assert.NotContains(t, all, "draft")
	assert.NotContains(t, all, "scheduled-future")

	// Only active banners ride along.
	require.Len(t, buckets.Banners, 1)
	assert.Equal(t, "b1", buckets.Banners[0].ID)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), &fakeBannerRepo{})
	_, err := svc.GetProduct(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
