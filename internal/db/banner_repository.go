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

const bannersCollection = "banners"

// firestoreBannerRepository implements the BannerRepository interface using Firestore.
type firestoreBannerRepository struct {
	client *firestore.Client
}

// NewFirestoreBannerRepository creates a new instance of firestoreBannerRepository.
func NewFirestoreBannerRepository(client *firestore.Client) BannerRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BannerRepository.")
	}
	return &firestoreBannerRepository{client: client}
}

// Create adds a new banner document with an auto-generated ID.
func (r *firestoreBannerRepository) Create(ctx context.Context, banner *models.Banner) (string, error) {
	docRef := r.client.Collection(bannersCollection).NewDoc()
	banner.ID = docRef.ID

	_, err := docRef.Create(ctx, banner)
	if err != nil {
		return "", fmt.Errorf("failed to create banner: %w", err)
	}
	return docRef.ID, nil
}

// ListActive retrieves active banners in display order.
func (r *firestoreBannerRepository) ListActive(ctx context.Context) ([]*models.Banner, error) {
	query := r.client.Collection(bannersCollection).
		Where("isActive", "==", true).
		OrderBy("order", firestore.Asc)
	return r.collect(ctx, query.Documents(ctx))
}

// ListAll retrieves every banner in display order for the admin screen.
func (r *firestoreBannerRepository) ListAll(ctx context.Context) ([]*models.Banner, error) {
	query := r.client.Collection(bannersCollection).OrderBy("order", firestore.Asc)
	return r.collect(ctx, query.Documents(ctx))
}

// Update modifies an existing banner document.
func (r *firestoreBannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	if banner.ID == "" {
		return errors.New("banner ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(bannersCollection).Doc(banner.ID).Set(ctx, banner)
	if err != nil {
		return fmt.Errorf("failed to update banner with ID '%s': %w", banner.ID, err)
	}
	return nil
}

// Delete removes a banner document.
func (r *firestoreBannerRepository) Delete(ctx context.Context, bannerID string) error {
	if bannerID == "" {
		return errors.New("bannerID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(bannersCollection).Doc(bannerID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("banner with ID '%s' not found for deletion: %w", bannerID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete banner with ID '%s': %w", bannerID, err)
	}
	return nil
}

// Reorder rewrites every banner's order field in a single atomic batch so a
// half-applied display sequence is never visible.
func (r *firestoreBannerRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return errors.New("orderedIDs cannot be empty for Reorder operation")
	}

	batch := r.client.Batch()
	for position, id := range orderedIDs {
		ref := r.client.Collection(bannersCollection).Doc(id)
		batch.Update(ref, []firestore.Update{
			{Path: "order", Value: position},
		})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit banner reorder batch: %w", err)
	}
	return nil
}

func (r *firestoreBannerRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*models.Banner, error) {
	defer iter.Stop()

	var banners []*models.Banner
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate banners: %w", err)
		}

		var banner models.Banner
		if err := doc.DataTo(&banner); err != nil {
			log.Printf("Error decoding banner data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		banner.ID = doc.Ref.ID
		banners = append(banners, &banner)
	}
	return banners, nil
}
