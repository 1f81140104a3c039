package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
// Callers treat absence as "initialize defaults", not as a failure.
var ErrNotFound = errors.New("store: key not found")

// Store persists opaque serialized snapshots under string keys. Writes
// replace the whole value; there are no partial updates, so a snapshot is
// always read and written atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
