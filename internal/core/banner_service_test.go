package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/models"
)

func TestCreateBannerAppendsToDisplayOrder(t *testing.T) {
	repo := &fakeBannerRepo{banners: []*models.Banner{
		{ID: "b1", Order: 0, IsActive: true},
		{ID: "b2", Order: 1, IsActive: true},
	}}
	svc := NewBannerService(repo)

	banner, err := svc.CreateBanner(context.Background(), models.CreateBannerRequest{
		ImageURL: "https://img.example/new.jpg",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, banner.Order)
}

func TestReorderBanners(t *testing.T) {
	repo := &fakeBannerRepo{banners: []*models.Banner{
		{ID: "b1", Order: 0},
		{ID: "b2", Order: 1},
		{ID: "b3", Order: 2},
	}}
	svc := NewBannerService(repo)

	require.NoError(t, svc.ReorderBanners(context.Background(), []string{"b3", "b1", "b2"}))
	assert.Equal(t, 1, repo.banners[0].Order)
	assert.Equal(t, 2, repo.banners[1].Order)
	assert.Equal(t, 0, repo.banners[2].Order)

	assert.Error(t, svc.ReorderBanners(context.Background(), nil))
}

func TestUpdateBannerNotFound(t *testing.T) {
	svc := NewBannerService(&fakeBannerRepo{})
	active := true
	_, err := svc.UpdateBanner(context.Background(), "ghost", models.UpdateBannerRequest{IsActive: &active})
	assert.ErrorIs(t, err, ErrBannerNotFound)
}
