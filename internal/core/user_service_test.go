package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/models"
)

func TestGetOrCreateCreatesCustomerProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, created, err := svc.GetOrCreate(context.Background(), "u1", "kim@example.com", "Kim", "https://img.example/kim.jpg")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.UserRoleCustomer, user.Role)
	assert.Equal(t, int64(0), user.NoShowCount)
	assert.False(t, user.IsRestricted)

	// Second call returns the existing profile untouched.
	again, created, err := svc.GetOrCreate(context.Background(), "u1", "other@example.com", "Other", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "kim@example.com", again.Email)
}

func TestSetRestricted(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Role: models.UserRoleCustomer})
	svc := NewUserService(repo)

	require.NoError(t, svc.SetRestricted(context.Background(), "u1", true))
	assert.True(t, repo.users["u1"].IsRestricted)

	require.NoError(t, svc.SetRestricted(context.Background(), "u1", false))
	assert.False(t, repo.users["u1"].IsRestricted)

	assert.ErrorIs(t, svc.SetRestricted(context.Background(), "ghost", true), ErrUserNotFound)
}

func TestSetRole(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Role: models.UserRoleCustomer})
	svc := NewUserService(repo)

	require.NoError(t, svc.SetRole(context.Background(), "u1", models.UserRoleAdmin))
	assert.Equal(t, models.UserRoleAdmin, repo.users["u1"].Role)

	assert.Error(t, svc.SetRole(context.Background(), "u1", "superuser"))
}
