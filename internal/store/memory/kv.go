// Package memory is a process-local store.KV used for development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/store"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero => never
}

type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock lets tests drive expiry.
func NewWithClock(now func() time.Time) *Store {
	return &Store{data: make(map[string]entry), now: now}
}

func (s *Store) live(e entry) bool {
	return e.expiresAt.IsZero() || s.now().Before(e.expiresAt)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok || !s.live(e) {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k, e := range s.data {
		if strings.HasPrefix(k, prefix) && s.live(e) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Backend() string { return "memory" }

func (s *Store) Close() error { return nil }
