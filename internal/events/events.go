package events

import "time"

// Event types published on the order queue.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published for downstream consumers (notification
// workers, dashboards). Publishing is best-effort: a failed publish never
// fails the order operation that produced it.
type OrderEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId,omitempty"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher defines the interface for emitting order events.
type Publisher interface {
	Publish(event OrderEvent) error
	Close() error
}

// NopPublisher discards every event. Used when AMQP_URL is not configured.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that drops all events.
func NewNopPublisher() Publisher { return NopPublisher{} }

func (NopPublisher) Publish(OrderEvent) error { return nil }
func (NopPublisher) Close() error             { return nil }
