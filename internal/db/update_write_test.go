package db

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"groupbuy-backend-go/internal/models"
)

// offlineClient returns a Firestore client whose connection points at a
// closed port. A write that passes the SDK's client-side payload validation
// fails in transport; one the SDK rejects fails with its own message before
// any RPC is attempted.
func offlineClient(t *testing.T) *firestore.Client {
	t.Helper()
	conn, err := grpc.NewClient("localhost:1", grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	client, err := firestore.NewClient(context.Background(), "test-project", option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// The repositories send struct data on Update, which the SDK only accepts as
// a plain overwrite Set. MergeAll requires map data and is rejected
// client-side, so a regression here surfaces without a backend.
func TestUpdateWritesAcceptStructData(t *testing.T) {
	client := offlineClient(t)

	tests := []struct {
		name string
		call func(ctx context.Context) error
	}{
		{"product", func(ctx context.Context) error {
			return NewFirestoreProductRepository(client).Update(ctx, &models.Product{
				ID: "p1", Name: "Hallabong Box", Stock: 30,
				PricingOptions: []models.PricingOption{{Unit: "1box", Price: 25000}},
			})
		}},
		{"banner", func(ctx context.Context) error {
			return NewFirestoreBannerRepository(client).Update(ctx, &models.Banner{
				ID: "b1", ImageURL: "https://img.example/spring.jpg", Order: 1, IsActive: true,
			})
		}},
		{"category", func(ctx context.Context) error {
			return NewFirestoreCategoryRepository(client).Update(ctx, &models.Category{
				ID: "c1", Name: "Fruit",
			})
		}},
		{"user", func(ctx context.Context) error {
			return NewFirestoreUserRepository(client).Update(ctx, &models.User{
				ID: "u1", Email: "u1@example.com", Role: models.UserRoleCustomer,
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := tt.call(ctx)
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "MergeAll")
		})
	}
}
