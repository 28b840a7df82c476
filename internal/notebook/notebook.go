// Package notebook persists the user's saved items as one JSON array.
//
// Every mutation is a read-modify-write of the whole array. Writers inside
// this process are serialized; separate processes sharing a backend are not
// coordinated and the last write wins.
package notebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/store"
)

type Store struct {
	kv  store.KV
	log logger.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func New(kv store.KV, log logger.Logger) *Store {
	return &Store{
		kv:    kv,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// load returns the stored items, or an empty slice when the blob is missing
// or unreadable. A corrupt blob is logged, never returned as an error.
func (s *Store) load(ctx context.Context) []domain.SavedItem {
	data, err := s.kv.Get(ctx, store.KeyNotebook)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error("failed to read notebook", logger.Error(err))
		}
		return []domain.SavedItem{}
	}

	var items []domain.SavedItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error("notebook is corrupt, treating as empty",
			logger.Int("bytes", len(data)),
			logger.Error(err))
		return []domain.SavedItem{}
	}
	if items == nil {
		items = []domain.SavedItem{}
	}
	return items
}

func (s *Store) persist(ctx context.Context, items []domain.SavedItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal notebook: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyNotebook, data, 0); err != nil {
		return fmt.Errorf("failed to persist notebook: %w", err)
	}
	return nil
}

// List returns every saved item, most recently created first.
func (s *Store) List(ctx context.Context) []domain.SavedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save stores c unless an item with the same (type, refId) exists, in which
// case the existing item is returned untouched.
func (s *Store) Save(ctx context.Context, c domain.Candidate) (domain.SavedItem, error) {
	item, _, err := s.Add(ctx, c)
	return item, err
}

// Add is Save that also reports whether a new item was created.
func (s *Store) Add(ctx context.Context, c domain.Candidate) (domain.SavedItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	if existing, ok := find(items, c.Type, c.RefID); ok {
		return existing, false, nil
	}
	item, err := s.insert(ctx, items, c)
	if err != nil {
		return domain.SavedItem{}, false, err
	}
	return item, true, nil
}

// Remove deletes the item with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, s.load(ctx), id)
}

// insert and remove expect s.mu held and items freshly loaded.

func (s *Store) insert(ctx context.Context, items []domain.SavedItem, c domain.Candidate) (domain.SavedItem, error) {
	item := c.Item(s.newID(), s.now().UnixMilli())
	if err := s.persist(ctx, append([]domain.SavedItem{item}, items...)); err != nil {
		return domain.SavedItem{}, err
	}

	s.log.Debug("notebook item saved",
		logger.String("id", item.ID),
		logger.String("type", string(item.Type)),
		logger.String("ref_id", item.RefID))
	return item, nil
}

func (s *Store) remove(ctx context.Context, items []domain.SavedItem, id string) error {
	kept := make([]domain.SavedItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.persist(ctx, kept)
}

// UpdateNote replaces the notes of the item with id. Unknown ids are a no-op.
func (s *Store) UpdateNote(ctx context.Context, id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	for i := range items {
		if items[i].ID == id {
			items[i].UserNotes = note
			return s.persist(ctx, items)
		}
	}
	return nil
}

// IsSaved reports whether an item with (t, refID) exists.
func (s *Store) IsSaved(ctx context.Context, refID string, t domain.ItemType) bool {
	_, ok := s.Find(ctx, t, refID)
	return ok
}

// Find returns the item with (t, refID).
func (s *Store) Find(ctx context.Context, t domain.ItemType, refID string) (domain.SavedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return find(s.load(ctx), t, refID)
}

// Get returns the item with id or a not found error.
func (s *Store) Get(ctx context.Context, id string) (domain.SavedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.load(ctx) {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.SavedItem{}, apperr.NotFoundf("notebook item %s not found", id)
}

// Toggle saves c when absent and removes the matching item when present.
// It reports whether the item is saved afterwards.
func (s *Store) Toggle(ctx context.Context, c domain.Candidate) (domain.SavedItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	if existing, ok := find(items, c.Type, c.RefID); ok {
		return existing, false, s.remove(ctx, items, existing.ID)
	}
	item, err := s.insert(ctx, items, c)
	if err != nil {
		return domain.SavedItem{}, false, err
	}
	return item, true, nil
}

func find(items []domain.SavedItem, t domain.ItemType, refID string) (domain.SavedItem, bool) {
	for _, it := range items {
		if it.Matches(t, refID) {
			return it, true
		}
	}
	return domain.SavedItem{}, false
}
