package db

import (
	"context"

	"groupbuy-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	SetRestricted(ctx context.Context, userID string, restricted bool) error
	SetRole(ctx context.Context, userID string, role models.UserRole) error
}

// ProductRepository defines the interface for product data storage operations.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (string, error) // Returns new product ID
	GetByID(ctx context.Context, productID string) (*models.Product, error)
	ListPublished(ctx context.Context) ([]*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID string) error
	// RequestEncore atomically records userID's encore vote for the product.
	// Returns ErrAlreadyRequested when the user has voted before.
	RequestEncore(ctx context.Context, productID, userID string) error
}

// StockReservation is one line of a checkout's stock decrement.
type StockReservation struct {
	ProductID string
	Quantity  int64
}

// OrderRepository defines the interface for order data storage operations.
type OrderRepository interface {
	// CreateWithStockReservation writes the order and decrements stock for
	// every reservation inside a single transaction. Returns the new order ID,
	// or ErrInsufficientStock when any reservation cannot be satisfied.
	CreateWithStockReservation(ctx context.Context, order *models.Order, reservations []StockReservation) (string, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Order, error)
	SearchByPhoneLast4(ctx context.Context, last4 string) ([]*models.Order, error)
	// TransitionStatus updates the order's status inside a transaction.
	// validate is called with the freshly read current status and may reject
	// the transition. When newStatus is cancelled, the owning user's
	// noShowCount is incremented in the same transaction (once, guarded by
	// the fresh read, so a transaction retry cannot double-count).
	// Returns the status the order held before the write.
	TransitionStatus(ctx context.Context, orderID string, newStatus models.OrderStatus, validate func(current models.OrderStatus) error) (models.OrderStatus, error)
}

// BannerRepository defines the interface for banner data storage operations.
type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) (string, error)
	ListActive(ctx context.Context) ([]*models.Banner, error)
	ListAll(ctx context.Context) ([]*models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, bannerID string) error
	// Reorder rewrites the Order field of every listed banner in one batch,
	// position in orderedIDs becoming the new display order.
	Reorder(ctx context.Context, orderedIDs []string) error
}

// CategoryRepository defines the interface for category data storage operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (string, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID string) error
}

// CouponRepository defines the interface for coupon data storage operations.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) (string, error)
	List(ctx context.Context) ([]*models.Coupon, error)
	Delete(ctx context.Context, couponID string) error
}
