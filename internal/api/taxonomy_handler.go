package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// TaxonomyHandler handles the category and coupon endpoints.
type TaxonomyHandler struct {
	categoryService core.CategoryService
	couponService   core.CouponService
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(cats core.CategoryService, coups core.CouponService) *TaxonomyHandler {
	return &TaxonomyHandler{categoryService: cats, couponService: coups}
}

func mapTaxonomyErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrCategoryNotFound.Error()})
	case errors.Is(err, core.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrCouponNotFound.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListCategories handles GET /api/v1/categories. Public: the storefront uses
// the taxonomy for its filter chips.
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		mapTaxonomyErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		mapTaxonomyErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:categoryId.
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")
	if categoryID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Category ID is required"})
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		mapTaxonomyErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Category deleted"})
}

// ListCoupons handles GET /api/v1/admin/coupons.
func (h *TaxonomyHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		mapTaxonomyErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// CreateCoupon handles POST /api/v1/admin/coupons.
func (h *TaxonomyHandler) CreateCoupon(c *gin.Context) {
	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		// Coupon validation failures come back as plain errors.
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid coupon", Details: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// DeleteCoupon handles DELETE /api/v1/admin/coupons/:couponId.
func (h *TaxonomyHandler) DeleteCoupon(c *gin.Context) {
	couponID := c.Param("couponId")
	if couponID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Coupon ID is required"})
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), couponID); err != nil {
		mapTaxonomyErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Coupon deleted"})
}
