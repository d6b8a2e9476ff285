// Package otp holds the ephemeral one-time-password records and the store
// they live in. At most one live record exists per phone number; writing a
// new record for the same number replaces the old one.
package otp

import (
	"context"
	"time"
)

type Record struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is a keyed record store with TTL support. Implementations must give
// last-writer-wins semantics per phone number. The store's own eviction TTL
// is a garbage-collection bound, not the validity window: callers check
// Record.ExpiresAt so that an expired-but-present record can be reported as
// expired rather than absent.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, phone string) (Record, bool, error)
	Delete(ctx context.Context, phone string) error
}
