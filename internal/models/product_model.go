package models

import "time"

// SalesType controls how availability is interpreted for a product.
type SalesType string

const (
	// SalesTypePreOrder accepts reservations without a hard stock limit.
	SalesTypePreOrder SalesType = "PRE_ORDER_UNLIMITED"
	// SalesTypeInStock sells against the current Stock counter.
	SalesTypeInStock SalesType = "IN_STOCK"
)

// StorageType describes how a product must be stored until pickup.
type StorageType string

const (
	StorageTypeRoom    StorageType = "ROOM"
	StorageTypeChilled StorageType = "CHILLED"
	StorageTypeFrozen  StorageType = "FROZEN"
)

// ProductStatus is the publication lifecycle of a product.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusScheduled ProductStatus = "scheduled"
	ProductStatusSelling   ProductStatus = "selling"
	ProductStatusSoldOut   ProductStatus = "sold_out"
	ProductStatusEnded     ProductStatus = "ended"
)

// PricingOption is one purchasable unit of a product (e.g. "1box" at 10000).
type PricingOption struct {
	Unit  string `json:"unit" firestore:"unit"`
	Price int64  `json:"price" firestore:"price"`
}

// Product represents a document in the `products` collection.
type Product struct {
	ID             string          `json:"id" firestore:"-"` // Document ID
	Name           string          `json:"name" firestore:"name"`
	Description    string          `json:"description,omitempty" firestore:"description,omitempty"`
	PricingOptions []PricingOption `json:"pricingOptions" firestore:"pricingOptions"`
	ImageURLs      []string        `json:"imageUrls,omitempty" firestore:"imageUrls,omitempty"`
	Category       string          `json:"category,omitempty" firestore:"category,omitempty"`
	SubCategory    string          `json:"subCategory,omitempty" firestore:"subCategory,omitempty"`
	StorageType    StorageType     `json:"storageType" firestore:"storageType"`

	SalesType         SalesType `json:"salesType" firestore:"salesType"`
	InitialStock      int64     `json:"initialStock" firestore:"initialStock"`
	Stock             int64     `json:"stock" firestore:"stock"`
	MaxOrderPerPerson *int64    `json:"maxOrderPerPerson,omitempty" firestore:"maxOrderPerPerson,omitempty"`

	Status      ProductStatus `json:"status" firestore:"status"`
	IsPublished bool          `json:"isPublished" firestore:"isPublished"`
	PublishAt   time.Time     `json:"publishAt" firestore:"publishAt"`

	DeadlineDate       *time.Time `json:"deadlineDate,omitempty" firestore:"deadlineDate,omitempty"`
	ArrivalDate        *time.Time `json:"arrivalDate,omitempty" firestore:"arrivalDate,omitempty"`
	PickupDate         *time.Time `json:"pickupDate,omitempty" firestore:"pickupDate,omitempty"`
	PickupDeadlineDate *time.Time `json:"pickupDeadlineDate,omitempty" firestore:"pickupDeadlineDate,omitempty"`
	ExpirationDate     *time.Time `json:"expirationDate,omitempty" firestore:"expirationDate,omitempty"`

	SpecialLabels            []string `json:"specialLabels,omitempty" firestore:"specialLabels,omitempty"`
	EncoreCount              int64    `json:"encoreCount" firestore:"encoreCount"`
	RequesterIDs             []string `json:"-" firestore:"requesterIds,omitempty"` // users who already asked for an encore
	IsNew                    bool     `json:"isNew" firestore:"isNew"`
	IsAvailableForOnsiteSale bool     `json:"isAvailableForOnsiteSale" firestore:"isAvailableForOnsiteSale"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
