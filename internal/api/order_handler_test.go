package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/models"
)

// stubOrderService records the checkout request it receives.
type stubOrderService struct {
	checkoutReq *models.CheckoutRequest
}

func (s *stubOrderService) Checkout(ctx context.Context, userID, displayName string, req models.CheckoutRequest) (*models.Order, error) {
	s.checkoutReq = &req
	return &models.Order{
		ID:        "o1",
		UserID:    userID,
		Status:    models.OrderStatusPending,
		OrderDate: time.Now(),
	}, nil
}

func (s *stubOrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return nil, core.ErrOrderNotFound
}

func (s *stubOrderService) ListOrdersByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return nil, nil
}

func (s *stubOrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return nil, nil
}

func (s *stubOrderService) SetStatus(ctx context.Context, orderIDs []string, newStatus models.OrderStatus) (map[string]error, error) {
	return nil, nil
}

func (s *stubOrderService) SearchOrdersByPhoneSuffix(ctx context.Context, suffix string) ([]*models.Order, error) {
	return nil, nil
}

func checkoutContext(w *httptest.ResponseRecorder, body string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	c.Set("userID", "u1")
	return c
}

func TestCheckoutAcceptsEmptyBody(t *testing.T) {
	// Every checkout field is optional; a bodyless POST uses the defaults.
	gin.SetMode(gin.TestMode)
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	w := httptest.NewRecorder()
	h.Checkout(checkoutContext(w, ""))

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.checkoutReq)
	assert.Equal(t, models.CheckoutRequest{}, *svc.checkoutReq)
}

func TestCheckoutBindsBodyWhenPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	w := httptest.NewRecorder()
	h.Checkout(checkoutContext(w, `{"phoneLast4":"1234"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.checkoutReq)
	assert.Equal(t, "1234", svc.checkoutReq.PhoneLast4)
}

func TestCheckoutRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	w := httptest.NewRecorder()
	h.Checkout(checkoutContext(w, `{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.checkoutReq)
}
