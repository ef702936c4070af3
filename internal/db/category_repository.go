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

const categoriesCollection = "categories"

type firestoreCategoryRepository struct {
	client *firestore.Client
}

// NewFirestoreCategoryRepository creates a new instance of firestoreCategoryRepository.
func NewFirestoreCategoryRepository(client *firestore.Client) CategoryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CategoryRepository.")
	}
	return &firestoreCategoryRepository{client: client}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *models.Category) (string, error) {
	docRef := r.client.Collection(categoriesCollection).NewDoc()
	category.ID = docRef.ID

	_, err := docRef.Create(ctx, category)
	if err != nil {
		return "", fmt.Errorf("failed to create category: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	iter := r.client.Collection(categoriesCollection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var categories []*models.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate categories: %w", err)
		}

		var category models.Category
		if err := doc.DataTo(&category); err != nil {
			log.Printf("Error decoding category data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		category.ID = doc.Ref.ID
		categories = append(categories, &category)
	}
	return categories, nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		return errors.New("category ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Set(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to update category with ID '%s': %w", category.ID, err)
	}
	return nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return errors.New("categoryID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(categoriesCollection).Doc(categoryID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("category with ID '%s' not found for deletion: %w", categoryID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete category with ID '%s': %w", categoryID, err)
	}
	return nil
}
