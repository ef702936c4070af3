package api

import (
	"time"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OrderResponse wraps an order with its derived display status. The stored
// status never contains "no_show"; it is computed at read time from the
// pickup deadline.
type OrderResponse struct {
	*models.Order
	DisplayStatus string `json:"displayStatus"`
}

func toOrderResponse(order *models.Order, now time.Time) OrderResponse {
	return OrderResponse{
		Order:         order,
		DisplayStatus: core.DeriveDisplayStatus(order, now),
	}
}

func toOrderResponses(orders []*models.Order, now time.Time) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order, now))
	}
	return out
}

// BulkStatusResponse reports the outcome of a bulk status update. Failed maps
// order ID to the reason that order kept its previous status.
type BulkStatusResponse struct {
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}
