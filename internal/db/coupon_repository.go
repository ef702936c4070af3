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

const couponsCollection = "coupons"

type firestoreCouponRepository struct {
	client *firestore.Client
}

// NewFirestoreCouponRepository creates a new instance of firestoreCouponRepository.
func NewFirestoreCouponRepository(client *firestore.Client) CouponRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CouponRepository.")
	}
	return &firestoreCouponRepository{client: client}
}

func (r *firestoreCouponRepository) Create(ctx context.Context, coupon *models.Coupon) (string, error) {
	docRef := r.client.Collection(couponsCollection).NewDoc()
	coupon.ID = docRef.ID

	_, err := docRef.Create(ctx, coupon)
	if err != nil {
		return "", fmt.Errorf("failed to create coupon: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreCouponRepository) List(ctx context.Context) ([]*models.Coupon, error) {
	iter := r.client.Collection(couponsCollection).OrderBy("code", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var coupons []*models.Coupon
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate coupons: %w", err)
		}

		var coupon models.Coupon
		if err := doc.DataTo(&coupon); err != nil {
			log.Printf("Error decoding coupon data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		coupon.ID = doc.Ref.ID
		coupons = append(coupons, &coupon)
	}
	return coupons, nil
}

func (r *firestoreCouponRepository) Delete(ctx context.Context, couponID string) error {
	if couponID == "" {
		return errors.New("couponID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(couponsCollection).Doc(couponID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("coupon with ID '%s' not found for deletion: %w", couponID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete coupon with ID '%s': %w", couponID, err)
	}
	return nil
}
