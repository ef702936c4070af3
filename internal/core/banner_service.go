package core

import (
	"context"
	"errors"
	"fmt"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

// ErrBannerNotFound is returned when a banner operation targets a missing
// document.
var ErrBannerNotFound = errors.New("banner not found")

// bannerService implements the BannerService interface.
type bannerService struct {
	bannerRepo db.BannerRepository
}

// NewBannerService creates a new BannerService instance.
func NewBannerService(br db.BannerRepository) BannerService {
	return &bannerService{bannerRepo: br}
}

// ListActiveBanners returns the storefront carousel, in display order.
func (s *bannerService) ListActiveBanners(ctx context.Context) ([]*models.Banner, error) {
	banners, err := s.bannerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active banners: %w", err)
	}
	return banners, nil
}

// ListBanners returns every banner, active or not, for the admin list.
func (s *bannerService) ListBanners(ctx context.Context) ([]*models.Banner, error) {
	banners, err := s.bannerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// CreateBanner appends a new banner at the end of the display order.
func (s *bannerService) CreateBanner(ctx context.Context, req models.CreateBannerRequest) (*models.Banner, error) {
	existing, err := s.bannerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine banner order: %w", err)
	}

	banner := &models.Banner{
		ImageURL: req.ImageURL,
		LinkTo:   req.LinkTo,
		IsActive: req.IsActive,
		Order:    len(existing),
	}
	bannerID, err := s.bannerRepo.Create(ctx, banner)
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	banner.ID = bannerID
	return banner, nil
}

// UpdateBanner applies the provided fields onto the stored banner.
func (s *bannerService) UpdateBanner(ctx context.Context, bannerID string, req models.UpdateBannerRequest) (*models.Banner, error) {
	banners, err := s.bannerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get banner '%s' for update: %w", bannerID, err)
	}
	var banner *models.Banner
	for _, b := range banners {
		if b.ID == bannerID {
			banner = b
			break
		}
	}
	if banner == nil {
		return nil, fmt.Errorf("%w: banner with ID '%s'", ErrBannerNotFound, bannerID)
	}

	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkTo != nil {
		banner.LinkTo = *req.LinkTo
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: banner with ID '%s'", ErrBannerNotFound, bannerID)
		}
		return nil, fmt.Errorf("failed to update banner '%s': %w", bannerID, err)
	}
	return banner, nil
}

// DeleteBanner removes a banner. Remaining Order values keep their relative
// sequence, so no renumbering is needed.
func (s *bannerService) DeleteBanner(ctx context.Context, bannerID string) error {
	if err := s.bannerRepo.Delete(ctx, bannerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: banner with ID '%s'", ErrBannerNotFound, bannerID)
		}
		return fmt.Errorf("failed to delete banner '%s': %w", bannerID, err)
	}
	return nil
}

// ReorderBanners rewrites the display order to match orderedIDs.
func (s *bannerService) ReorderBanners(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return errors.New("orderedIDs cannot be empty")
	}
	if err := s.bannerRepo.Reorder(ctx, orderedIDs); err != nil {
		return fmt.Errorf("failed to reorder banners: %w", err)
	}
	return nil
}
