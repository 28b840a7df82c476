// Package storetest runs the same behavioural checks against every store.KV backend.
package storetest

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/store"
)

// Run exercises kv. Keys written are prefixed with "storetest:".
// expire, when non-nil, advances the backend clock past ttl; backends
// with a real clock pass nil and the expiry check is skipped.
func Run(t *testing.T, kv store.KV, expire func(ttl time.Duration)) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := kv.Get(ctx, "storetest:missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set get overwrite", func(t *testing.T) {
		if err := kv.Set(ctx, "storetest:a", []byte("one"), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := kv.Set(ctx, "storetest:a", []byte("two"), 0); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got, err := kv.Get(ctx, "storetest:a")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "two" {
			t.Errorf("Get() = %q, want %q", got, "two")
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = kv.Set(ctx, "storetest:del", []byte("x"), 0)
		if err := kv.Delete(ctx, "storetest:del"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := kv.Delete(ctx, "storetest:del"); err != nil {
			t.Errorf("Delete() of missing key error = %v, want nil", err)
		}
		if _, err := kv.Get(ctx, "storetest:del"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("keys by prefix", func(t *testing.T) {
		for _, k := range []string{"storetest:p:1", "storetest:p:2", "storetest:q:1"} {
			if err := kv.Set(ctx, k, []byte("v"), 0); err != nil {
				t.Fatalf("Set(%s) error = %v", k, err)
			}
		}
		keys, err := kv.Keys(ctx, "storetest:p:")
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		slices.Sort(keys)
		if want := []string{"storetest:p:1", "storetest:p:2"}; !slices.Equal(keys, want) {
			t.Errorf("Keys() = %v, want %v", keys, want)
		}
	})

	t.Run("ttl", func(t *testing.T) {
		if expire == nil {
			t.Skip("backend clock cannot be advanced")
		}
		if err := kv.Set(ctx, "storetest:ttl", []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if _, err := kv.Get(ctx, "storetest:ttl"); err != nil {
			t.Fatalf("Get() before expiry error = %v", err)
		}
		expire(time.Minute)
		if _, err := kv.Get(ctx, "storetest:ttl"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() after expiry error = %v, want ErrNotFound", err)
		}
		keys, _ := kv.Keys(ctx, "storetest:ttl")
		if len(keys) != 0 {
			t.Errorf("Keys() after expiry = %v, want none", keys)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := kv.Ping(ctx); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}
