package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

// Custom errors for the ProductService.
var (
	ErrInvalidProductInput = errors.New("invalid product input")
	ErrAlreadyRequested    = errors.New("encore already requested for this product")
)

// productService implements the ProductService interface.
type productService struct {
	productRepo db.ProductRepository
	now         func() time.Time
}

// NewProductService creates a new ProductService instance.
func NewProductService(pr db.ProductRepository) ProductService {
	return &productService{productRepo: pr, now: time.Now}
}

func validatePricingOptions(options []models.PricingOption) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: at least one pricing option is required", ErrInvalidProductInput)
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt.Unit == "" {
			return fmt.Errorf("%w: pricing option unit cannot be empty", ErrInvalidProductInput)
		}
		if opt.Price <= 0 {
			return fmt.Errorf("%w: pricing option '%s' must have a positive price", ErrInvalidProductInput, opt.Unit)
		}
		if _, dup := seen[opt.Unit]; dup {
			return fmt.Errorf("%w: duplicate pricing option unit '%s'", ErrInvalidProductInput, opt.Unit)
		}
		seen[opt.Unit] = struct{}{}
	}
	return nil
}

// validateDates enforces deadline < pickup <= pickupDeadline for whichever
// of the three dates are set.
func validateDates(deadline, pickup, pickupDeadline *time.Time) error {
	if deadline != nil && pickup != nil && !deadline.Before(*pickup) {
		return fmt.Errorf("%w: deadline must be before the pickup date", ErrInvalidProductInput)
	}
	if pickup != nil && pickupDeadline != nil && pickup.After(*pickupDeadline) {
		return fmt.Errorf("%w: pickup date must not be after the pickup deadline", ErrInvalidProductInput)
	}
	if deadline != nil && pickupDeadline != nil && !deadline.Before(*pickupDeadline) {
		return fmt.Errorf("%w: deadline must be before the pickup deadline", ErrInvalidProductInput)
	}
	return nil
}

// CreateProduct validates the form and writes a new product. PublishMode
// decides the initial lifecycle: draft stays invisible, now goes live
// immediately, scheduled goes live when publishAt arrives (the catalog skips
// it until then).
func (s *productService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := validatePricingOptions(req.PricingOptions); err != nil {
		return nil, err
	}
	if err := validateDates(req.DeadlineDate, req.PickupDate, req.PickupDeadlineDate); err != nil {
		return nil, err
	}
	if req.SalesType != models.SalesTypePreOrder && req.SalesType != models.SalesTypeInStock {
		return nil, fmt.Errorf("%w: unknown sales type '%s'", ErrInvalidProductInput, req.SalesType)
	}
	if req.SalesType == models.SalesTypeInStock && req.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial stock cannot be negative", ErrInvalidProductInput)
	}
	if req.MaxOrderPerPerson != nil && *req.MaxOrderPerPerson < 1 {
		return nil, fmt.Errorf("%w: max order per person must be at least 1", ErrInvalidProductInput)
	}

	now := s.now()
	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		PricingOptions: req.PricingOptions,
		ImageURLs:      req.ImageURLs,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		StorageType:    req.StorageType,
		SalesType:      req.SalesType,

		DeadlineDate:       req.DeadlineDate,
		ArrivalDate:        req.ArrivalDate,
		PickupDate:         req.PickupDate,
		PickupDeadlineDate: req.PickupDeadlineDate,
		ExpirationDate:     req.ExpirationDate,

		SpecialLabels:            req.SpecialLabels,
		IsNew:                    req.IsNew,
		IsAvailableForOnsiteSale: req.IsAvailableForOnsiteSale,
		MaxOrderPerPerson:        req.MaxOrderPerPerson,
	}

	if req.SalesType == models.SalesTypeInStock {
		product.InitialStock = req.InitialStock
		product.Stock = req.InitialStock
	} else {
		product.InitialStock = models.UnlimitedStock
		product.Stock = models.UnlimitedStock
	}

	switch req.PublishMode {
	case models.PublishModeDraft:
		product.Status = models.ProductStatusDraft
		product.IsPublished = false
		product.PublishAt = now
	case models.PublishModeNow:
		product.Status = models.ProductStatusSelling
		product.IsPublished = true
		product.PublishAt = now
	case models.PublishModeScheduled:
		if req.PublishAt == nil {
			return nil, fmt.Errorf("%w: publishAt is required for scheduled publishing", ErrInvalidProductInput)
		}
		product.Status = models.ProductStatusScheduled
		product.IsPublished = true
		product.PublishAt = *req.PublishAt
	default:
		return nil, fmt.Errorf("%w: unknown publish mode '%s'", ErrInvalidProductInput, req.PublishMode)
	}

	productID, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = productID
	return product, nil
}

// UpdateProduct applies the provided fields onto the stored product and
// re-validates the merged result, so a partial edit cannot break the pricing
// or date invariants.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product '%s' for update: %w", productID, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PricingOptions != nil {
		product.PricingOptions = *req.PricingOptions
	}
	if req.ImageURLs != nil {
		product.ImageURLs = *req.ImageURLs
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SubCategory != nil {
		product.SubCategory = *req.SubCategory
	}
	if req.StorageType != nil {
		product.StorageType = *req.StorageType
	}
	if req.SalesType != nil {
		product.SalesType = *req.SalesType
	}
	if req.InitialStock != nil {
		product.InitialStock = *req.InitialStock
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MaxOrderPerPerson != nil {
		product.MaxOrderPerPerson = req.MaxOrderPerPerson
	}
	if req.Status != nil {
		product.Status = *req.Status
		product.IsPublished = *req.Status != models.ProductStatusDraft
	}
	if req.PublishAt != nil {
		product.PublishAt = *req.PublishAt
	}
	if req.DeadlineDate != nil {
		product.DeadlineDate = req.DeadlineDate
	}
	if req.ArrivalDate != nil {
		product.ArrivalDate = req.ArrivalDate
	}
	if req.PickupDate != nil {
		product.PickupDate = req.PickupDate
	}
	if req.PickupDeadlineDate != nil {
		product.PickupDeadlineDate = req.PickupDeadlineDate
	}
	if req.ExpirationDate != nil {
		product.ExpirationDate = req.ExpirationDate
	}
	if req.SpecialLabels != nil {
		product.SpecialLabels = *req.SpecialLabels
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsAvailableForOnsiteSale != nil {
		product.IsAvailableForOnsiteSale = *req.IsAvailableForOnsiteSale
	}

	if err := validatePricingOptions(product.PricingOptions); err != nil {
		return nil, err
	}
	if err := validateDates(product.DeadlineDate, product.PickupDate, product.PickupDeadlineDate); err != nil {
		return nil, err
	}
	if product.Status != "" {
		switch product.Status {
		case models.ProductStatusDraft, models.ProductStatusScheduled, models.ProductStatusSelling,
			models.ProductStatusSoldOut, models.ProductStatusEnded:
		default:
			return nil, fmt.Errorf("%w: unknown product status '%s'", ErrInvalidProductInput, product.Status)
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to update product '%s': %w", productID, err)
	}
	return product, nil
}

// DeleteProduct removes a product. Existing orders keep their item snapshots.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return fmt.Errorf("failed to delete product '%s': %w", productID, err)
	}
	return nil
}

// ListProducts returns every product, drafts included, for the admin list.
func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// RequestEncore records one encore vote for a past product. The repository
// transaction guards against the same user voting twice.
func (s *productService) RequestEncore(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for encore request")
	}
	err := s.productRepo.RequestEncore(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyRequested) {
			return ErrAlreadyRequested
		}
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return fmt.Errorf("failed to record encore request for product '%s': %w", productID, err)
	}
	return nil
}
