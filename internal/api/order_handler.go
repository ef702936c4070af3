package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// OrderHandler handles the order lifecycle API endpoints, for both customers
// and the admin back office.
type OrderHandler struct {
	orderService core.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os core.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// mapOrderErrorToStatus maps errors from core.OrderService to HTTP status codes.
func mapOrderErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrOrderNotFound.Error()})
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrUserNotFound.Error()})
	case errors.Is(err, core.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrProductNotFound.Error()})
	case errors.Is(err, core.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrEmptyCart.Error()})
	case errors.Is(err, core.ErrUserRestricted):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: core.ErrUserRestricted.Error()})
	case errors.Is(err, core.ErrInsufficientStock):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrInsufficientStock.Error(), Details: err.Error()})
	case errors.Is(err, core.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: core.ErrInvalidTransition.Error(), Details: err.Error()})
	case errors.Is(err, core.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidStatus.Error()})
	case errors.Is(err, core.ErrInvalidPhoneSuffix):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: core.ErrInvalidPhoneSuffix.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// Checkout handles POST /api/v1/orders.
// Converts the authenticated user's cart into a pending order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	// Every checkout field is optional, so a bodyless POST is valid and
	// checks out with the defaults.
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, c.GetString("userDisplayName"), req)
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order, time.Now()))
}

// ListMyOrders handles GET /api/v1/orders.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}

	orders, err := h.orderService.ListOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders, time.Now()))
}

// GetMyOrder handles GET /api/v1/orders/:orderId.
// Customers can only read their own orders; a foreign order ID reports not
// found rather than forbidden, to avoid confirming its existence.
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return
	}
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order ID is required"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrOrderNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, time.Now()))
}

// ListOrders handles GET /api/v1/admin/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders, time.Now()))
}

// UpdateStatus handles PUT /api/v1/admin/orders/status.
// Applies one transition to every listed order; orders that fail keep their
// state and are reported per-order so the rest of the batch still lands.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	failed, err := h.orderService.SetStatus(c.Request.Context(), req.OrderIDs, req.NewStatus)
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}

	resp := BulkStatusResponse{Updated: len(req.OrderIDs) - len(failed)}
	if len(failed) > 0 {
		resp.Failed = make(map[string]string, len(failed))
		for orderID, ferr := range failed {
			resp.Failed[orderID] = ferr.Error()
		}
		// Partial success still carries every per-order outcome.
		c.JSON(http.StatusMultiStatus, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SearchOrders handles GET /api/v1/admin/orders/search?phone=1234.
// Pickup-desk lookup by the last digits of the customer's phone number.
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	suffix := c.Query("phone")
	if suffix == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'phone' is required"})
		return
	}

	orders, err := h.orderService.SearchOrdersByPhoneSuffix(c.Request.Context(), suffix)
	if err != nil {
		mapOrderErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders, time.Now()))
}
