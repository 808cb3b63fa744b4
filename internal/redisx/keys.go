package redisx

import "time"

const (
	// Idempotent order registration: pos:idem:register:{external_id} -> order_id
	KeyIdemOrderRegister = "pos:idem:register:%s"

	// Order status cache: pos:order:status:{order_id} -> JSON status body
	KeyOrderStatus = "pos:order:status:%s"

	// Dedup for event consumers: pos:dedup:{service}:{event_id}
	KeyDedup = "pos:dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
