package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/events"
	"groupbuy-backend-go/internal/models"
)

// Custom errors for the OrderService.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUserRestricted     = errors.New("user is restricted from ordering")
	ErrInsufficientStock  = errors.New("insufficient stock for order")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidPhoneSuffix = errors.New("phone suffix must be 2 to 4 digits")
)

// DisplayStatusNoShow is the derived label for orders whose pickup deadline
// has passed while still pending or paid. It is never stored: storage keeps
// only the four states of models.OrderStatus.
const DisplayStatusNoShow = "no_show"

// DeriveDisplayStatus returns the presentation status for an order at the
// given time. Pending and paid orders past their pickup deadline display as
// no-show; everything else displays its stored status.
func DeriveDisplayStatus(order *models.Order, now time.Time) string {
	if order.Status == models.OrderStatusPending || order.Status == models.OrderStatusPaid {
		if order.PickupDeadlineDate != nil && now.After(*order.PickupDeadlineDate) {
			return DisplayStatusNoShow
		}
	}
	return string(order.Status)
}

// orderService implements the OrderService interface.
type orderService struct {
	orderRepo   db.OrderRepository
	userRepo    db.UserRepository
	cartService CartService
	publisher   events.Publisher
	now         func() time.Time
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(or db.OrderRepository, ur db.UserRepository, cs CartService, pub events.Publisher) OrderService {
	if pub == nil {
		pub = events.NewNopPublisher()
	}
	return &orderService{
		orderRepo:   or,
		userRepo:    ur,
		cartService: cs,
		publisher:   pub,
		now:         time.Now,
	}
}

// defaultPickupWindow is pickup tomorrow, deadline tomorrow 23:59:59.
func defaultPickupWindow(now time.Time) (pickup, deadline time.Time) {
	tomorrow := now.AddDate(0, 0, 1)
	pickup = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	deadline = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, tomorrow.Location())
	return pickup, deadline
}

// Checkout turns the user's cart into one pending order. The order items are
// an immutable snapshot of the cart lines and totalPrice is computed here,
// never recomputed later. Stock for every IN_STOCK line is reserved in the
// same transaction that writes the order document, so a concurrent checkout
// cannot oversell; ErrInsufficientStock aborts the whole checkout. On
// success the cart is cleared and an order.created event is published.
func (s *orderService) Checkout(ctx context.Context, userID, displayName string, req models.CheckoutRequest) (*models.Order, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s' for checkout: %w", userID, err)
	}
	if user.IsRestricted {
		return nil, ErrUserRestricted
	}

	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user '%s': %w", userID, err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	reserved := make(map[string]int64)
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Unit:      line.SelectedUnit,
		})
		if line.SalesType == models.SalesTypeInStock {
			reserved[line.ProductID] += line.Quantity
		}
	}
	reservations := make([]db.StockReservation, 0, len(reserved))
	for productID, quantity := range reserved {
		reservations = append(reservations, db.StockReservation{ProductID: productID, Quantity: quantity})
	}

	customerName := displayName
	if customerName == "" {
		customerName = user.DisplayName
	}
	phoneLast4 := req.PhoneLast4
	if phoneLast4 == "" {
		phoneLast4 = "0000"
	}

	now := s.now()
	pickup, pickupDeadline := defaultPickupWindow(now)
	order := &models.Order{
		UserID:             userID,
		CustomerName:       customerName,
		CustomerPhoneLast4: phoneLast4,
		Items:              items,
		TotalPrice:         cart.Total(),
		OrderDate:          now,
		Status:             models.OrderStatusPending,
		PickupDate:         &pickup,
		PickupDeadlineDate: &pickupDeadline,
	}

	orderID, err := s.orderRepo.CreateWithStockReservation(ctx, order, reservations)
	if err != nil {
		if errors.Is(err, db.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: a cart line references a missing product", ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to create order for user '%s': %w", userID, err)
	}
	order.ID = orderID

	// The order exists now; cart cleanup and event publishing are
	// best-effort and must not fail the checkout.
	if err := s.cartService.ClearCart(ctx, userID); err != nil {
		log.Printf("Checkout succeeded but cart clear failed for user %s: %v", userID, err)
	}
	s.publish(events.OrderEvent{
		ID:         uuid.NewString(),
		Type:       events.TypeOrderCreated,
		OrderID:    order.ID,
		UserID:     userID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		OccurredAt: now,
	})

	return order, nil
}

// GetOrder retrieves a single order.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: order with ID '%s'", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}
	return order, nil
}

// ListOrdersByUser returns the user's order history, newest first.
func (s *orderService) ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user '%s': %w", userID, err)
	}
	return orders, nil
}

// ListOrders returns every order for the admin list, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// SetStatus applies the transition to each order through one code path: the
// repository transaction validates the table against the freshly read status
// and, for cancellations, increments the owning user's noShowCount in the
// same transaction. Both the single-order dropdown and the bulk pickup flow
// go through here, so the two admin surfaces can no longer diverge on
// atomicity. Orders that fail are reported in the returned map and do not
// stop the rest of the batch.
func (s *orderService) SetStatus(ctx context.Context, orderIDs []string, newStatus models.OrderStatus) (map[string]error, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidStatus, newStatus)
	}
	if len(orderIDs) == 0 {
		return nil, errors.New("no order IDs given for status update")
	}

	failed := make(map[string]error)
	for _, orderID := range orderIDs {
		_, err := s.orderRepo.TransitionStatus(ctx, orderID, newStatus, func(current models.OrderStatus) error {
			if !current.CanTransitionTo(newStatus) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, newStatus)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				err = fmt.Errorf("%w: order with ID '%s'", ErrOrderNotFound, orderID)
			}
			failed[orderID] = err
			continue
		}
		s.publish(events.OrderEvent{
			ID:         uuid.NewString(),
			Type:       events.TypeOrderStatusChanged,
			OrderID:    orderID,
			Status:     string(newStatus),
			OccurredAt: s.now(),
		})
	}
	return failed, nil
}

// SearchOrdersByPhoneSuffix finds orders for the pickup desk by the last
// digits of the customer's phone number. Input must be 2 to 4 digits; the
// match is a suffix match against the stored last-4 field.
func (s *orderService) SearchOrdersByPhoneSuffix(ctx context.Context, suffix string) ([]*models.Order, error) {
	if len(suffix) < 2 || len(suffix) > 4 {
		return nil, ErrInvalidPhoneSuffix
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return nil, ErrInvalidPhoneSuffix
		}
	}

	orders, err := s.orderRepo.SearchByPhoneLast4(ctx, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders by phone suffix: %w", err)
	}
	return orders, nil
}

func (s *orderService) publish(event events.OrderEvent) {
	if err := s.publisher.Publish(event); err != nil {
		log.Printf("Failed to publish order event %s (%s): %v", event.ID, event.Type, err)
	}
}
