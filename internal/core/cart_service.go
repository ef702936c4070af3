package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"groupbuy-backend-go/internal/cache"
	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

// ErrUnknownUnit is returned when an add-to-cart request names a pricing
// option the product does not offer.
var ErrUnknownUnit = errors.New("product does not offer the requested unit")

const cartKeyPrefix = "cart:"

// cartService implements the CartService interface. The aggregate itself is
// pure (see Cart); this service snapshots product data into new lines,
// validates quantity bounds against the live product at add time, and
// persists the whole aggregate to the cache on every mutation.
type cartService struct {
	store       cache.Cache
	productRepo db.ProductRepository
}

// NewCartService creates a new CartService instance.
func NewCartService(store cache.Cache, pr db.ProductRepository) CartService {
	return &cartService{
		store:       store,
		productRepo: pr,
	}
}

// load rehydrates the user's cart from the cache. A missing or corrupt
// payload degrades to an empty cart rather than surfacing an error.
func (s *cartService) load(userID string) *Cart {
	cart := &Cart{}
	raw, err := s.store.Get(cartKeyPrefix + userID)
	if err != nil || raw == "" {
		return cart
	}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		log.Printf("Corrupt cart payload for user %s, starting empty: %v", userID, err)
		return &Cart{}
	}
	return cart
}

// save serializes the whole aggregate back to the cache.
func (s *cartService) save(userID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to serialize cart for user '%s': %w", userID, err)
	}
	if err := s.store.Set(cartKeyPrefix+userID, string(raw), 0); err != nil {
		return fmt.Errorf("failed to persist cart for user '%s': %w", userID, err)
	}
	return nil
}

// GetCart returns the user's current cart.
func (s *cartService) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.load(userID), nil
}

// AddItem snapshots the product into a cart line and merges it in. The
// requested quantity is validated against the product's current stock and
// per-person limit; the merged total is not re-validated (the stored
// snapshot bounds still apply on later quantity steps).
func (s *cartService) AddItem(ctx context.Context, userID string, req models.AddCartItemRequest) (*Cart, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to get product '%s' for cart add: %w", req.ProductID, err)
	}

	var option *models.PricingOption
	for i := range product.PricingOptions {
		if product.PricingOptions[i].Unit == req.SelectedUnit {
			option = &product.PricingOptions[i]
			break
		}
	}
	if option == nil {
		return nil, fmt.Errorf("%w: '%s' on product '%s'", ErrUnknownUnit, req.SelectedUnit, req.ProductID)
	}

	availableStock := models.UnlimitedStock
	if product.SalesType == models.SalesTypeInStock {
		availableStock = product.Stock
		// Stock of -1 means no cap even for IN_STOCK products.
		if availableStock != models.UnlimitedStock && req.Quantity > availableStock {
			return nil, ErrQuantityExceedsStock
		}
	}
	if product.MaxOrderPerPerson != nil && req.Quantity > *product.MaxOrderPerPerson {
		return nil, ErrQuantityExceedsLimit
	}

	imageURL := ""
	if len(product.ImageURLs) > 0 {
		imageURL = product.ImageURLs[0]
	}

	cart := s.load(userID)
	cart.AddItem(models.CartItem{
		ProductID:         product.ID,
		ProductName:       product.Name,
		SelectedUnit:      option.Unit,
		UnitPrice:         option.Price,
		Quantity:          req.Quantity,
		ImageURL:          imageURL,
		MaxOrderPerPerson: product.MaxOrderPerPerson,
		AvailableStock:    availableStock,
		SalesType:         product.SalesType,
	})
	if err := s.save(userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ChangeQuantity steps an existing line's quantity; bounds are enforced by
// the aggregate against its captured snapshot.
func (s *cartService) ChangeQuantity(ctx context.Context, userID string, req models.ChangeCartQuantityRequest) (*Cart, error) {
	cart := s.load(userID)
	if err := cart.ChangeQuantity(req.ProductID, req.SelectedUnit, req.Delta); err != nil {
		return nil, err
	}
	if err := s.save(userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the matching line; removing an absent line is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, userID string, req models.RemoveCartItemRequest) (*Cart, error) {
	cart := s.load(userID)
	cart.RemoveItem(req.ProductID, req.SelectedUnit)
	if err := s.save(userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the user's cart. Called once after a successful checkout.
func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.store.Delete(cartKeyPrefix + userID); err != nil {
		return fmt.Errorf("failed to clear cart for user '%s': %w", userID, err)
	}
	return nil
}
