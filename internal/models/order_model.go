package models

import "time"

// OrderStatus is the stored lifecycle state of an order.
//
// Two admin screens of the legacy system used diverging vocabularies (English
// and Korean labels) for the same four states; this enum is the single source
// of truth and presentation labels live in the API layer.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the four stored states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the state machine allows s -> next.
//
//	pending   -> paid | delivered | cancelled
//	paid      -> delivered | cancelled
//	delivered -> (terminal)
//	cancelled -> (terminal)
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.IsValid() {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusDelivered || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	}
	return false
}

// OrderItem is an immutable snapshot of one purchased line at order time.
// It copies name/price/unit from the product; it is not a live reference.
type OrderItem struct {
	ProductID   string `json:"productId" firestore:"productId"`
	Name        string `json:"name" firestore:"name"`
	Quantity    int64  `json:"quantity" firestore:"quantity"`
	Price       int64  `json:"price" firestore:"price"`
	Unit        string `json:"unit" firestore:"unit"`
	Category    string `json:"category,omitempty" firestore:"category,omitempty"`
	SubCategory string `json:"subCategory,omitempty" firestore:"subCategory,omitempty"`
}

// Order represents a document in the `orders` collection.
type Order struct {
	ID                 string      `json:"id" firestore:"-"` // Document ID
	UserID             string      `json:"userId" firestore:"userId"`
	CustomerName       string      `json:"customerName" firestore:"customerName"`
	CustomerPhoneLast4 string      `json:"customerPhoneLast4,omitempty" firestore:"customerPhoneLast4,omitempty"`
	Items              []OrderItem `json:"items" firestore:"items"`
	TotalPrice         int64       `json:"totalPrice" firestore:"totalPrice"`
	OrderDate          time.Time   `json:"orderDate" firestore:"orderDate"`
	Status             OrderStatus `json:"status" firestore:"status"`
	PickupDate         *time.Time  `json:"pickupDate,omitempty" firestore:"pickupDate,omitempty"`
	PickupDeadlineDate *time.Time  `json:"pickupDeadlineDate,omitempty" firestore:"pickupDeadlineDate,omitempty"`
}
