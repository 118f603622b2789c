package repository

import (
	"time"

	"github.com/google/uuid"
)

// CachedResponse is a previously produced response replayed for a repeated
// idempotency key.
type CachedResponse struct {
	Code     int
	Body     []byte
	StoredAt time.Time
}

// IdempotencyStore caches checkout responses per (key, session) so a
// retried request with the same Idempotency-Key does not create a second
// order.
type IdempotencyStore interface {
	Get(key string, sessionID uuid.UUID) (*CachedResponse, bool)
	Put(key string, sessionID uuid.UUID, resp *CachedResponse)
}
