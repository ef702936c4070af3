package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// ProductHandler handles the admin product endpoints plus the customer
// encore request.
type ProductHandler struct {
	productService core.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps core.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// mapProductErrorToStatus maps errors from core.ProductService to HTTP status codes.
func mapProductErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrProductNotFound.Error()})
	case errors.Is(err, core.ErrInvalidProductInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidProductInput.Error(), Details: err.Error()})
	case errors.Is(err, core.ErrAlreadyRequested):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrAlreadyRequested.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListProducts handles GET /api/v1/admin/products.
// Returns every product including drafts, unlike the public catalog.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		mapProductErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		mapProductErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/v1/admin/products/:productId.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		mapProductErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/admin/products/:productId.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		mapProductErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted"})
}

// RequestEncore handles POST /api/v1/products/:productId/encore.
// One vote per user per product; a repeat vote reports conflict.
func (h *ProductHandler) RequestEncore(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	if err := h.productService.RequestEncore(c.Request.Context(), userID, productID); err != nil {
		mapProductErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Encore request recorded"})
}
