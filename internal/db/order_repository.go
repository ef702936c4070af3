package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"groupbuy-backend-go/internal/models"
)

const ordersCollection = "orders"

// ErrInsufficientStock is returned when a stock reservation cannot be
// satisfied by the product's current stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// phoneSearchWindow bounds the in-memory filter for short suffix input.
const phoneSearchWindow = 200

// firestoreOrderRepository implements the OrderRepository interface using Firestore.
type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository creates a new instance of firestoreOrderRepository.
func NewFirestoreOrderRepository(client *firestore.Client) OrderRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OrderRepository.")
	}
	return &firestoreOrderRepository{client: client}
}

// CreateWithStockReservation writes the order document and decrements product
// stock in a single transaction. All product reads happen before any write
// (Firestore transaction rule); if any reservation exceeds the freshly read
// stock the whole transaction aborts with ErrInsufficientStock and neither
// the order nor any decrement is committed.
func (r *firestoreOrderRepository) CreateWithStockReservation(ctx context.Context, order *models.Order, reservations []StockReservation) (string, error) {
	orderRef := r.client.Collection(ordersCollection).NewDoc()
	order.ID = orderRef.ID

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		type decrement struct {
			ref      *firestore.DocumentRef
			newStock int64
		}
		decrements := make([]decrement, 0, len(reservations))

		for _, res := range reservations {
			productRef := r.client.Collection(productsCollection).Doc(res.ProductID)
			doc, err := tx.Get(productRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return fmt.Errorf("product with ID '%s' not found: %w", res.ProductID, ErrNotFound)
				}
				return err
			}

			var product models.Product
			if err := doc.DataTo(&product); err != nil {
				return fmt.Errorf("failed to decode product data for ID '%s': %w", res.ProductID, err)
			}
			if product.Stock == models.UnlimitedStock {
				continue // no cap, nothing to decrement
			}
			if product.Stock < res.Quantity {
				return fmt.Errorf("%w: product '%s' has %d, requested %d",
					ErrInsufficientStock, res.ProductID, product.Stock, res.Quantity)
			}
			decrements = append(decrements, decrement{ref: productRef, newStock: product.Stock - res.Quantity})
		}

		for _, dec := range decrements {
			if err := tx.Update(dec.ref, []firestore.Update{
				{Path: "stock", Value: dec.newStock},
			}); err != nil {
				return err
			}
		}

		return tx.Create(orderRef, order)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("checkout transaction failed: %w", err)
	}
	return orderRef.ID, nil
}

// GetByID retrieves an order document from Firestore by its ID.
func (r *firestoreOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, errors.New("orderID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(ordersCollection).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("order with ID '%s' not found: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order with ID '%s': %w", orderID, err)
	}

	var order models.Order
	if err := docSnap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order data for ID '%s': %w", orderID, err)
	}
	order.ID = docSnap.Ref.ID

	return &order, nil
}

// ListByUser retrieves all orders belonging to a user, newest first.
func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUser operation")
	}
	query := r.client.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("orderDate", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

// ListAll retrieves every order document, newest first.
func (r *firestoreOrderRepository) ListAll(ctx context.Context) ([]*models.Order, error) {
	query := r.client.Collection(ordersCollection).OrderBy("orderDate", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

// ListRecent retrieves the newest 'limit' orders.
func (r *firestoreOrderRepository) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = phoneSearchWindow
	}
	query := r.client.Collection(ordersCollection).OrderBy("orderDate", firestore.Desc).Limit(limit)
	return r.collect(ctx, query.Documents(ctx))
}

// SearchByPhoneLast4 finds orders whose stored last-4 phone digits end with
// the given suffix. A full 4-digit input uses an equality query; shorter
// input (2-3 digits) cannot be expressed as a Firestore predicate, so recent
// orders are fetched and filtered in memory.
func (r *firestoreOrderRepository) SearchByPhoneLast4(ctx context.Context, last4 string) ([]*models.Order, error) {
	if last4 == "" {
		return nil, errors.New("last4 cannot be empty for SearchByPhoneLast4 operation")
	}

	if len(last4) == 4 {
		query := r.client.Collection(ordersCollection).Where("customerPhoneLast4", "==", last4)
		orders, err := r.collect(ctx, query.Documents(ctx))
		if err != nil {
			return nil, err
		}
		// Equality queries are unordered; present newest first.
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		})
		return orders, nil
	}

	recent, err := r.ListRecent(ctx, phoneSearchWindow)
	if err != nil {
		return nil, err
	}
	var matches []*models.Order
	for _, order := range recent {
		if strings.HasSuffix(order.CustomerPhoneLast4, last4) {
			matches = append(matches, order)
		}
	}
	return matches, nil
}

// TransitionStatus performs the status write and, for cancellations, the
// owning user's noShowCount increment inside one transaction. The increment
// is guarded by the freshly read status (skipped when the order is already
// cancelled), so Firestore re-running the transaction body on contention
// cannot double-count a no-show.
func (r *firestoreOrderRepository) TransitionStatus(ctx context.Context, orderID string, newStatus models.OrderStatus, validate func(current models.OrderStatus) error) (models.OrderStatus, error) {
	if orderID == "" {
		return "", errors.New("orderID cannot be empty for TransitionStatus operation")
	}
	orderRef := r.client.Collection(ordersCollection).Doc(orderID)

	var previous models.OrderStatus
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("order with ID '%s' not found: %w", orderID, ErrNotFound)
			}
			return err
		}

		var order models.Order
		if err := doc.DataTo(&order); err != nil {
			return fmt.Errorf("failed to decode order data for ID '%s': %w", orderID, err)
		}
		previous = order.Status

		if validate != nil {
			if err := validate(order.Status); err != nil {
				return err
			}
		}

		if err := tx.Update(orderRef, []firestore.Update{
			{Path: "status", Value: newStatus},
		}); err != nil {
			return err
		}

		if newStatus == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled && order.UserID != "" {
			userRef := r.client.Collection(usersCollection).Doc(order.UserID)
			if err := tx.Update(userRef, []firestore.Update{
				{Path: "noShowCount", Value: firestore.Increment(1)},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return previous, err
	}
	return previous, nil
}

func (r *firestoreOrderRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*models.Order, error) {
	defer iter.Stop()

	var orders []*models.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var order models.Order
		if err := doc.DataTo(&order); err != nil {
			log.Printf("Error decoding order data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		order.ID = doc.Ref.ID
		orders = append(orders, &order)
	}
	return orders, nil
}
