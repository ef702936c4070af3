package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// catalogService implements the CatalogService interface.
type catalogService struct {
	productRepo db.ProductRepository
	bannerRepo  db.BannerRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(pr db.ProductRepository, br db.BannerRepository) CatalogService {
	return &catalogService{
		productRepo: pr,
		bannerRepo:  br,
	}
}

// ListCatalog fetches published products and active banners and partitions
// the products into four temporal buckets:
//
//  1. on-site sale: isAvailableForOnsiteSale with stock remaining
//  2. ongoing: selling and before the order deadline
//  3. additional reservation: past the deadline, before the pickup deadline,
//     with stock remaining
//  4. past: everything else
//
// First match wins; fetch order (publishAt descending) is preserved within
// each bucket. Drafts and scheduled products with a future publishAt are
// excluded entirely.
func (s *catalogService) ListCatalog(ctx context.Context, now time.Time) (*CatalogBuckets, error) {
	products, err := s.productRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published products: %w", err)
	}
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active banners: %w", err)
	}

	buckets := &CatalogBuckets{Banners: banners}
	for _, p := range products {
		if p.Status == models.ProductStatusDraft {
			continue
		}
		if p.Status == models.ProductStatusScheduled && p.PublishAt.After(now) {
			continue
		}

		switch {
		case p.IsAvailableForOnsiteSale && p.Stock > 0:
			buckets.OnsiteSale = append(buckets.OnsiteSale, p)
		case p.Status == models.ProductStatusSelling && p.DeadlineDate != nil && now.Before(*p.DeadlineDate):
			buckets.Ongoing = append(buckets.Ongoing, p)
		case p.DeadlineDate != nil && p.PickupDeadlineDate != nil &&
			now.After(*p.DeadlineDate) && now.Before(*p.PickupDeadlineDate) && p.Stock > 0:
			buckets.AdditionalReservation = append(buckets.AdditionalReservation, p)
		default:
			buckets.Past = append(buckets.Past, p)
		}
	}
	return buckets, nil
}

// GetProduct retrieves a single product for the detail page.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product '%s': %w", productID, err)
	}
	return product, nil
}
