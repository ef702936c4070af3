package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"groupbuy-backend-go/internal/models"
)

const productsCollection = "products"

// ErrAlreadyRequested is returned by RequestEncore when the user has already
// voted for the product.
var ErrAlreadyRequested = errors.New("encore already requested by this user")

// firestoreProductRepository implements the ProductRepository interface using Firestore.
type firestoreProductRepository struct {
	client *firestore.Client
}

// NewFirestoreProductRepository creates a new instance of firestoreProductRepository.
func NewFirestoreProductRepository(client *firestore.Client) ProductRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProductRepository.")
	}
	return &firestoreProductRepository{client: client}
}

// Create adds a new product document to Firestore with an auto-generated ID.
func (r *firestoreProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	docRef := r.client.Collection(productsCollection).NewDoc()
	product.ID = docRef.ID

	_, err := docRef.Create(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a product document from Firestore by its ID.
func (r *firestoreProductRepository) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	if productID == "" {
		return nil, errors.New("productID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(productsCollection).Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("product with ID '%s' not found: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product with ID '%s': %w", productID, err)
	}

	var product models.Product
	if err := docSnap.DataTo(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product data for ID '%s': %w", productID, err)
	}
	product.ID = docSnap.Ref.ID

	return &product, nil
}

// ListPublished retrieves all published products, most recently published first.
// The temporal bucketing for the storefront happens in the service layer.
func (r *firestoreProductRepository) ListPublished(ctx context.Context) ([]*models.Product, error) {
	query := r.client.Collection(productsCollection).
		Where("isPublished", "==", true).
		OrderBy("publishAt", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

// ListAll retrieves every product document for the admin list.
func (r *firestoreProductRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	query := r.client.Collection(productsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreProductRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*models.Product, error) {
	defer iter.Stop()

	var products []*models.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var product models.Product
		if err := doc.DataTo(&product); err != nil {
			log.Printf("Error decoding product data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		product.ID = doc.Ref.ID
		products = append(products, &product)
	}
	return products, nil
}

// Update modifies an existing product document in Firestore.
func (r *firestoreProductRepository) Update(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		return errors.New("product ID cannot be empty for Update operation")
	}
	// The service layer sends the full merged document, so a plain overwrite
	// is correct here. MergeAll is not an option: the client rejects it for
	// struct data before any RPC is made.
	_, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to update product with ID '%s': %w", product.ID, err)
	}
	return nil
}

// Delete removes a product document from Firestore.
func (r *firestoreProductRepository) Delete(ctx context.Context, productID string) error {
	if productID == "" {
		return errors.New("productID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(productsCollection).Doc(productID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("product with ID '%s' not found for deletion: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete product with ID '%s': %w", productID, err)
	}
	return nil
}

// RequestEncore records an encore vote inside a transaction: the product is
// re-read, the vote is rejected if the user already appears in requesterIds,
// otherwise the user is appended and encoreCount incremented. The
// read-then-conditional-write guard makes the operation safe under
// Firestore's automatic transaction retry.
func (r *firestoreProductRepository) RequestEncore(ctx context.Context, productID, userID string) error {
	if productID == "" || userID == "" {
		return errors.New("productID and userID are required for RequestEncore")
	}
	productRef := r.client.Collection(productsCollection).Doc(productID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(productRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("product with ID '%s' not found: %w", productID, ErrNotFound)
			}
			return err
		}

		var product models.Product
		if err := doc.DataTo(&product); err != nil {
			return fmt.Errorf("failed to decode product data for ID '%s': %w", productID, err)
		}
		for _, id := range product.RequesterIDs {
			if id == userID {
				return ErrAlreadyRequested
			}
		}

		return tx.Update(productRef, []firestore.Update{
			{Path: "requesterIds", Value: firestore.ArrayUnion(userID)},
			{Path: "encoreCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRequested) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("encore request transaction failed for product '%s': %w", productID, err)
	}
	return nil
}
