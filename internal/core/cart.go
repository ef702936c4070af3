package core

import (
	"errors"

	"groupbuy-backend-go/internal/models"
)

// Cart mutation errors. These are validation failures: they are raised before
// any Firestore call and surfaced to the caller as 400-level responses.
var (
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrQuantityBelowMinimum = errors.New("quantity cannot be less than 1")
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")
	ErrQuantityExceedsLimit = errors.New("quantity exceeds per-person order limit")
)

// Cart is a user's reservation-intent aggregate: a list of snapshot lines
// keyed by (productId, selectedUnit). Total and Count are pure functions of
// the current lines; nothing is cached.
type Cart struct {
	Items []models.CartItem `json:"items"`
}

func (c *Cart) find(productID, selectedUnit string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.SelectedUnit == selectedUnit {
			return i
		}
	}
	return -1
}

// AddItem merges the new line into an existing entry with the same
// (productId, selectedUnit) key, or appends it. Merging adds quantities
// without re-validating the combined total against stock; the caller is
// expected to have validated the delta it is adding.
func (c *Cart) AddItem(item models.CartItem) {
	if i := c.find(item.ProductID, item.SelectedUnit); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// ChangeQuantity steps an existing line's quantity by delta. The resulting
// quantity must stay >= 1, within the captured stock for IN_STOCK items
// (unless the unlimited sentinel), and within maxOrderPerPerson when set.
// On rejection the line is left unchanged.
func (c *Cart) ChangeQuantity(productID, selectedUnit string, delta int64) error {
	i := c.find(productID, selectedUnit)
	if i < 0 {
		return ErrCartItemNotFound
	}
	item := c.Items[i]
	newQuantity := item.Quantity + delta

	if newQuantity < 1 {
		return ErrQuantityBelowMinimum
	}
	if item.SalesType == models.SalesTypeInStock &&
		item.AvailableStock != models.UnlimitedStock &&
		newQuantity > item.AvailableStock {
		return ErrQuantityExceedsStock
	}
	if item.MaxOrderPerPerson != nil && newQuantity > *item.MaxOrderPerPerson {
		return ErrQuantityExceedsLimit
	}

	c.Items[i].Quantity = newQuantity
	return nil
}

// RemoveItem deletes the matching line. No-op when absent.
func (c *Cart) RemoveItem(productID, selectedUnit string) {
	i := c.find(productID, selectedUnit)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of unitPrice*quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int64 {
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
