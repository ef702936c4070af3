package core

import (
	"context"
	"errors"
	"fmt"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCouponNotFound   = errors.New("coupon not found")
)

// categoryService implements the CategoryService interface.
type categoryService struct {
	categoryRepo db.CategoryRepository
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(cr db.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: cr}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:          req.Name,
		SubCategories: req.SubCategories,
	}
	categoryID, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = categoryID
	return category, nil
}

// DeleteCategory removes a taxonomy node. Products keep their category
// strings; a deleted category simply stops being offered in the admin form.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: category with ID '%s'", ErrCategoryNotFound, categoryID)
		}
		return fmt.Errorf("failed to delete category '%s': %w", categoryID, err)
	}
	return nil
}

// couponService implements the CouponService interface.
type couponService struct {
	couponRepo db.CouponRepository
}

// NewCouponService creates a new CouponService instance.
func NewCouponService(cr db.CouponRepository) CouponService {
	return &couponService{couponRepo: cr}
}

func (s *couponService) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (s *couponService) CreateCoupon(ctx context.Context, req models.CreateCouponRequest) (*models.Coupon, error) {
	if req.Type != models.CouponTypeFixed && req.Type != models.CouponTypePercent {
		return nil, fmt.Errorf("invalid coupon type '%s'", req.Type)
	}
	if req.Value <= 0 {
		return nil, errors.New("coupon value must be positive")
	}
	if req.Type == models.CouponTypePercent && req.Value > 100 {
		return nil, errors.New("percent coupon value cannot exceed 100")
	}

	coupon := &models.Coupon{
		Code:  req.Code,
		Type:  req.Type,
		Value: req.Value,
	}
	couponID, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	coupon.ID = couponID
	return coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, couponID string) error {
	if err := s.couponRepo.Delete(ctx, couponID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: coupon with ID '%s'", ErrCouponNotFound, couponID)
		}
		return fmt.Errorf("failed to delete coupon '%s': %w", couponID, err)
	}
	return nil
}
