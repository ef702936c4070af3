package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
)

// CatalogHandler handles the public storefront read endpoints.
type CatalogHandler struct {
	catalogService core.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs core.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// GetCatalog handles GET /api/v1/catalog.
// Returns the published products partitioned into the four storefront
// buckets, plus the active banners.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	buckets, err := h.catalogService.ListCatalog(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("GetCatalog Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// GetProduct handles GET /api/v1/catalog/products/:productId.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, core.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			return
		}
		log.Printf("GetProduct Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}
