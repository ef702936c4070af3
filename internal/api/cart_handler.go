package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// CartHandler handles the per-user cart API endpoints.
type CartHandler struct {
	cartService core.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs core.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

// mapCartErrorToStatus maps errors from core.CartService to HTTP status codes.
func mapCartErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrProductNotFound.Error()})
	case errors.Is(err, core.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrCartItemNotFound.Error()})
	case errors.Is(err, core.ErrUnknownUnit):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrUnknownUnit.Error()})
	case errors.Is(err, core.ErrQuantityBelowMinimum):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrQuantityBelowMinimum.Error()})
	case errors.Is(err, core.ErrQuantityExceedsStock):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrQuantityExceedsStock.Error()})
	case errors.Is(err, core.ErrQuantityExceedsLimit):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrQuantityExceedsLimit.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ChangeQuantity handles PATCH /api/v1/cart/items.
// Delta is a step (+1/-1 from the storefront buttons); the resulting quantity
// is validated against stock and the per-person limit.
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.ChangeCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.ChangeQuantity(c.Request.Context(), userID, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Cart cleared"})
}
