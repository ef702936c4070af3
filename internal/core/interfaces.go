package core

import (
	"context"
	"time"

	"groupbuy-backend-go/internal/models"
)

// CatalogBuckets is the storefront partition of published products, plus the
// active banners fetched alongside them. Order within each bucket preserves
// the fetch order (publishAt descending).
type CatalogBuckets struct {
	OnsiteSale            []*models.Product `json:"onsiteSale"`
	Ongoing               []*models.Product `json:"ongoing"`
	AdditionalReservation []*models.Product `json:"additionalReservation"`
	Past                  []*models.Product `json:"past"`
	Banners               []*models.Banner  `json:"banners"`
}

// CatalogService defines the read-only storefront operations.
type CatalogService interface {
	ListCatalog(ctx context.Context, now time.Time) (*CatalogBuckets, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// CartService defines the per-user cart operations. The aggregate is
// persisted to the cache on every mutation and rehydrated on every read;
// corrupt or missing payloads load as an empty cart.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, req models.AddCartItemRequest) (*Cart, error)
	ChangeQuantity(ctx context.Context, userID string, req models.ChangeCartQuantityRequest) (*Cart, error)
	RemoveItem(ctx context.Context, userID string, req models.RemoveCartItemRequest) (*Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// OrderService defines the order lifecycle operations.
type OrderService interface {
	// Checkout snapshots the user's cart into one pending order, reserving
	// stock for IN_STOCK items in the same transaction, then clears the cart.
	Checkout(ctx context.Context, userID, displayName string, req models.CheckoutRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	// SetStatus applies one status transition to each listed order, enforcing
	// the transition table. Orders that fail keep their state; the returned
	// map carries the per-order error for partial failures.
	SetStatus(ctx context.Context, orderIDs []string, newStatus models.OrderStatus) (failed map[string]error, err error)
	SearchOrdersByPhoneSuffix(ctx context.Context, suffix string) ([]*models.Order, error)
}

// ProductService defines the admin-facing product operations plus the
// customer encore request.
type ProductService interface {
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID string, req models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
	RequestEncore(ctx context.Context, userID, productID string) error
}

// UserService defines the user profile and restriction operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it
	// creates a new customer profile with default values. Returns the user
	// and a boolean indicating if the user was created.
	GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetRestricted(ctx context.Context, userID string, restricted bool) error
	SetRole(ctx context.Context, userID string, role models.UserRole) error
}

// BannerService defines the banner CRUD and reorder operations.
type BannerService interface {
	ListActiveBanners(ctx context.Context) ([]*models.Banner, error)
	ListBanners(ctx context.Context) ([]*models.Banner, error)
	CreateBanner(ctx context.Context, req models.CreateBannerRequest) (*models.Banner, error)
	UpdateBanner(ctx context.Context, bannerID string, req models.UpdateBannerRequest) (*models.Banner, error)
	DeleteBanner(ctx context.Context, bannerID string) error
	ReorderBanners(ctx context.Context, orderedIDs []string) error
}

// CategoryService defines the taxonomy CRUD operations.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CouponService defines the coupon CRUD operations.
type CouponService interface {
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
	CreateCoupon(ctx context.Context, req models.CreateCouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, couponID string) error
}
