package pos

import (
	"encoding/json"
	"time"
)

const (
	EventOrderRegistered = "OrderRegistered"
	EventOrderPaid       = "OrderPaid"
	EventOrderShipped    = "OrderShipped"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // one of the consts above
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "pos-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload types per event ----

type OrderRegisteredPayload struct {
	OrderID    string     `json:"order_id"`
	ExternalID string     `json:"external_id,omitempty"`
	CustomerID int        `json:"customer_id"`
	Items      []LineItem `json:"items"`
	TotalCents int        `json:"total_cents"`
}

type OrderPaidPayload struct {
	OrderID     string `json:"order_id"`
	AmountCents int    `json:"amount_cents"`
}

type OrderShippedPayload struct {
	OrderID   string    `json:"order_id"`
	ShippedAt time.Time `json:"shipped_at"`
}
