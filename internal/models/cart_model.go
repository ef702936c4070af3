package models

// UnlimitedStock is the AvailableStock sentinel meaning "no stock cap".
// Used for PRE_ORDER_UNLIMITED items whose availability is unbounded.
const UnlimitedStock int64 = -1

// CartItem is one reservation-intent line in a user's cart.
//
// Everything except Quantity is a snapshot captured at add-to-cart time, not
// a live reference to the product document. The cart is persisted in the
// cache layer, never in Firestore.
type CartItem struct {
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName"`
	SelectedUnit      string    `json:"selectedUnit"`
	UnitPrice         int64     `json:"unitPrice"`
	Quantity          int64     `json:"quantity"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	MaxOrderPerPerson *int64    `json:"maxOrderPerPerson,omitempty"`
	AvailableStock    int64     `json:"availableStock"`
	SalesType         SalesType `json:"salesType"`
}
