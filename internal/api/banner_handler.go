package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// BannerHandler handles the admin banner endpoints.
type BannerHandler struct {
	bannerService core.BannerService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(bs core.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bs}
}

func mapBannerErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrBannerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrBannerNotFound.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListBanners handles GET /api/v1/admin/banners.
func (h *BannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.bannerService.ListBanners(c.Request.Context())
	if err != nil {
		mapBannerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

// CreateBanner handles POST /api/v1/admin/banners.
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	banner, err := h.bannerService.CreateBanner(c.Request.Context(), req)
	if err != nil {
		mapBannerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner handles PUT /api/v1/admin/banners/:bannerId.
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	bannerID := c.Param("bannerId")
	if bannerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Banner ID is required"})
		return
	}

	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	banner, err := h.bannerService.UpdateBanner(c.Request.Context(), bannerID, req)
	if err != nil {
		mapBannerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// DeleteBanner handles DELETE /api/v1/admin/banners/:bannerId.
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	bannerID := c.Param("bannerId")
	if bannerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Banner ID is required"})
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), bannerID); err != nil {
		mapBannerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Banner deleted"})
}

// ReorderBanners handles PUT /api/v1/admin/banners/order.
// The request carries the full display sequence, first to last.
func (h *BannerHandler) ReorderBanners(c *gin.Context) {
	var req models.ReorderBannersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.bannerService.ReorderBanners(c.Request.Context(), req.OrderedIDs); err != nil {
		mapBannerErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Banner order updated"})
}
