package orders

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

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

type OrderPlacedPayload struct {
	OrderID int64       `json:"order_id"`
	Status  Status      `json:"status"`
	Items   []OrderItem `json:"items"`
}

type OrderStatusChangedPayload struct {
	OrderID int64  `json:"order_id"`
	Status  Status `json:"status"`
}

// PartitionKey keys messages by order id so every event of one order lands
// on the same partition, in order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
