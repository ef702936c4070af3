package models

// Category is one node of the flat two-level taxonomy.
type Category struct {
	ID            string   `json:"id" firestore:"-"`
	Name          string   `json:"name" firestore:"name"`
	SubCategories []string `json:"subCategories,omitempty" firestore:"subCategories,omitempty"`
}

// CouponType selects between a fixed amount and a percentage discount.
type CouponType string

const (
	CouponTypeFixed   CouponType = "fixed"
	CouponTypePercent CouponType = "percent"
)

// Coupon represents a document in the `coupons` collection.
// Code uniqueness is by convention, not enforced by the store.
type Coupon struct {
	ID    string     `json:"id" firestore:"-"`
	Code  string     `json:"code" firestore:"code"`
	Type  CouponType `json:"type" firestore:"type"`
	Value int64      `json:"value" firestore:"value"`
}
