package models

import "time"

// AddCartItemRequest is the request body for adding a line to the cart.
type AddCartItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	SelectedUnit string `json:"selectedUnit" binding:"required"`
	Quantity     int64  `json:"quantity" binding:"required,min=1"`
}

// ChangeCartQuantityRequest steps an existing cart line's quantity by Delta.
type ChangeCartQuantityRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	SelectedUnit string `json:"selectedUnit" binding:"required"`
	Delta        int64  `json:"delta" binding:"required"`
}

// RemoveCartItemRequest identifies the cart line to delete.
type RemoveCartItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	SelectedUnit string `json:"selectedUnit" binding:"required"`
}

// CheckoutRequest is the request body for confirming a reservation.
// PhoneLast4 is stored on the order for the pickup-desk search.
type CheckoutRequest struct {
	PhoneLast4 string `json:"phoneLast4,omitempty"`
}

// UpdateOrderStatusRequest is the bulk status edit used by the pickup desk
// and the admin order list.
type UpdateOrderStatusRequest struct {
	OrderIDs  []string    `json:"orderIds" binding:"required"`
	NewStatus OrderStatus `json:"newStatus" binding:"required"`
}

// PublishMode selects the publication behavior when a product is created.
type PublishMode string

const (
	PublishModeDraft     PublishMode = "draft"
	PublishModeNow       PublishMode = "now"
	PublishModeScheduled PublishMode = "scheduled"
)

// CreateProductRequest is the admin product creation form.
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description,omitempty"`
	PricingOptions []PricingOption `json:"pricingOptions" binding:"required"`
	ImageURLs      []string        `json:"imageUrls,omitempty"`
	Category       string          `json:"category,omitempty"`
	SubCategory    string          `json:"subCategory,omitempty"`
	StorageType    StorageType     `json:"storageType" binding:"required"`
	SalesType      SalesType       `json:"salesType" binding:"required"`
	InitialStock   int64           `json:"initialStock"`
	MaxOrderPerPerson *int64       `json:"maxOrderPerPerson,omitempty"`

	PublishMode PublishMode `json:"publishMode" binding:"required"`
	PublishAt   *time.Time  `json:"publishAt,omitempty"` // required for scheduled mode

	DeadlineDate       *time.Time `json:"deadlineDate,omitempty"`
	ArrivalDate        *time.Time `json:"arrivalDate,omitempty"`
	PickupDate         *time.Time `json:"pickupDate,omitempty"`
	PickupDeadlineDate *time.Time `json:"pickupDeadlineDate,omitempty"`
	ExpirationDate     *time.Time `json:"expirationDate,omitempty"`

	SpecialLabels            []string `json:"specialLabels,omitempty"`
	IsNew                    bool     `json:"isNew"`
	IsAvailableForOnsiteSale bool     `json:"isAvailableForOnsiteSale"`
}

// UpdateProductRequest is the admin product edit form. Pointers distinguish
// "not provided" from zero values.
type UpdateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	PricingOptions *[]PricingOption `json:"pricingOptions,omitempty"`
	ImageURLs      *[]string        `json:"imageUrls,omitempty"`
	Category       *string          `json:"category,omitempty"`
	SubCategory    *string          `json:"subCategory,omitempty"`
	StorageType    *StorageType     `json:"storageType,omitempty"`
	SalesType      *SalesType       `json:"salesType,omitempty"`
	Stock          *int64           `json:"stock,omitempty"`
	InitialStock   *int64           `json:"initialStock,omitempty"`
	MaxOrderPerPerson *int64        `json:"maxOrderPerPerson,omitempty"`
	Status         *ProductStatus   `json:"status,omitempty"`
	PublishAt      *time.Time       `json:"publishAt,omitempty"`

	DeadlineDate       *time.Time `json:"deadlineDate,omitempty"`
	ArrivalDate        *time.Time `json:"arrivalDate,omitempty"`
	PickupDate         *time.Time `json:"pickupDate,omitempty"`
	PickupDeadlineDate *time.Time `json:"pickupDeadlineDate,omitempty"`
	ExpirationDate     *time.Time `json:"expirationDate,omitempty"`

	SpecialLabels            *[]string `json:"specialLabels,omitempty"`
	IsNew                    *bool     `json:"isNew,omitempty"`
	IsAvailableForOnsiteSale *bool     `json:"isAvailableForOnsiteSale,omitempty"`
}

// CreateBannerRequest is the admin banner creation form.
type CreateBannerRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	LinkTo   string `json:"linkTo,omitempty"`
	IsActive bool   `json:"isActive"`
}

// UpdateBannerRequest edits an existing banner.
type UpdateBannerRequest struct {
	ImageURL *string `json:"imageUrl,omitempty"`
	LinkTo   *string `json:"linkTo,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ReorderBannersRequest carries the full display sequence, first to last.
type ReorderBannersRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required"`
}

// SetRestrictionRequest toggles a user's restriction flag.
type SetRestrictionRequest struct {
	IsRestricted bool `json:"isRestricted"`
}

// CreateCategoryRequest creates one taxonomy node.
type CreateCategoryRequest struct {
	Name          string   `json:"name" binding:"required"`
	SubCategories []string `json:"subCategories,omitempty"`
}

// CreateCouponRequest creates a coupon.
type CreateCouponRequest struct {
	Code  string     `json:"code" binding:"required"`
	Type  CouponType `json:"type" binding:"required"`
	Value int64      `json:"value" binding:"required"`
}
