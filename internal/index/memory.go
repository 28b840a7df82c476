package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

// MemoryIndex holds the loaded catalog and answers id lookups.
// Readers always see one complete catalog; Update swaps it whole.
type MemoryIndex struct {
	mu          sync.RWMutex
	catalog     *domain.Catalog
	confessions map[string]domain.Confession
	bibles      map[string]domain.BibleVersion
	hymns       map[string]domain.Hymn
	theologians map[string]domain.Theologian
	lastReload  time.Time
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		catalog:     &domain.Catalog{},
		confessions: map[string]domain.Confession{},
		bibles:      map[string]domain.BibleVersion{},
		hymns:       map[string]domain.Hymn{},
		theologians: map[string]domain.Theologian{},
	}
}

// Update replaces the indexed catalog.
func (idx *MemoryIndex) Update(cat *domain.Catalog) {
	confessions := make(map[string]domain.Confession, len(cat.Confessions))
	for _, c := range cat.Confessions {
		confessions[c.ID] = c
	}
	bibles := make(map[string]domain.BibleVersion, len(cat.Bibles))
	for _, b := range cat.Bibles {
		bibles[b.ID] = b
	}
	hymns := make(map[string]domain.Hymn, len(cat.Hymns))
	for _, h := range cat.Hymns {
		hymns[h.ID] = h
	}
	theologians := make(map[string]domain.Theologian, len(cat.Theologians))
	for _, t := range cat.Theologians {
		theologians[t.ID] = t
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.catalog = cat
	idx.confessions = confessions
	idx.bibles = bibles
	idx.hymns = hymns
	idx.theologians = theologians
	idx.lastReload = time.Now()
}

// Catalog returns the current snapshot. Callers must not mutate it.
func (idx *MemoryIndex) Catalog() *domain.Catalog {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.catalog
}

func (idx *MemoryIndex) Confession(id string) (domain.Confession, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	c, ok := idx.confessions[id]
	return c, ok
}

func (idx *MemoryIndex) Bible(id string) (domain.BibleVersion, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.bibles[id]
	return b, ok
}

func (idx *MemoryIndex) Hymn(id string) (domain.Hymn, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	h, ok := idx.hymns[id]
	return h, ok
}

func (idx *MemoryIndex) Theologian(id string) (domain.Theologian, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	t, ok := idx.theologians[id]
	return t, ok
}

// HasBible reports whether id names a known translation.
func (idx *MemoryIndex) HasBible(id string) bool {
	_, ok := idx.Bible(id)
	return ok
}

// DefaultBible returns the catalog's default translation.
func (idx *MemoryIndex) DefaultBible() (domain.BibleVersion, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.bibles[idx.catalog.DefaultBible]
	return b, ok
}

// Counts returns the number of indexed confessions, bibles, hymns and theologians.
func (idx *MemoryIndex) Counts() map[string]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return map[string]int{
		"confessions": len(idx.confessions),
		"bibles":      len(idx.bibles),
		"hymns":       len(idx.hymns),
		"theologians": len(idx.theologians),
	}
}

// LastReload returns when Update last ran, zero before the first load.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

var _ domain.Lookup = (*MemoryIndex)(nil)
