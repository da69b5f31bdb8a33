// Package idempotency remembers client submission keys for a bounded window
// so a retried checkout maps back to the order it already created.
package idempotency

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("idempotency key is empty")

// Store is implemented by the DynamoDB table and the in-process cache.
type Store interface {
	// Reserve claims key for scope. created is false when a live record
	// already exists; that record is returned.
	Reserve(ctx context.Context, scope, key string) (rec *Record, created bool, err error)
	// Complete marks the reservation done and remembers the order.
	Complete(ctx context.Context, key string, orderID uint) error
	// Release drops a reservation whose submission failed, so the same key
	// may be retried.
	Release(ctx context.Context, key string) error
}
