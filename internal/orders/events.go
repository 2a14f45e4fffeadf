package orders

import (
	"encoding/json"
	"time"
)

const EventOrderCreated = "OrderCreated"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderLine struct {
	OrderID    int64   `json:"order_id"`
	ProductID  int64   `json:"product_id"`
	CategoryID *int64  `json:"category_id,omitempty"`
	SellerID   int64   `json:"seller_id"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"line_total"`
}

type OrderCreatedPayload struct {
	BuyerID         int64       `json:"buyer_id"`
	Lines           []OrderLine `json:"lines"`
	TotalAmount     float64     `json:"total_amount"`
	EcoPointsEarned int         `json:"eco_points_earned"`
}
