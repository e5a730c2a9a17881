package redisx

import "time"

const (
	// Serialized order for fast GET /orders/{id}: order:{order_id}
	KeyOrder = "order:%d"

	// Dedup for event consumers: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
