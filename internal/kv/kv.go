// Package kv provides the durable string-to-string map the transaction
// ledger persists into. Implementations must make Set atomic per key:
// a reader never observes a partially written value.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is an opaque durable map of string keys to string values.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the value stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
