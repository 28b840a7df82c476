// Package store defines the key/value contract shared by every persistence backend.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get on a missing or expired key.
var ErrNotFound = errors.New("store: key not found")

// KV is a flat byte store with optional per-key expiry.
// A ttl of zero means the key never expires.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete is a no-op on a missing key.
	Delete(ctx context.Context, key string) error
	// Keys lists live keys starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	// Backend names the implementation, for /infra.
	Backend() string
	Close() error
}
