package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/index"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/search"
)

// watchDebounce groups the bursts of events an editor produces on save.
const watchDebounce = 250 * time.Millisecond

// CatalogReloader handles reloading of the reference catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	index         *index.MemoryIndex
	search        *search.Index
	logger        logger.Logger
	interval      time.Duration
	watch         bool
	manualTrigger <-chan struct{}

	hooks []func(*domain.Catalog)

	reloadMu sync.Mutex
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. searchIdx may be nil.
// With watch set and an override file configured, writes to the file
// trigger a reload.
func NewCatalogReloader(
	loader *catalog.Loader,
	idx *index.MemoryIndex,
	searchIdx *search.Index,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
	watch bool,
) *CatalogReloader {
	return &CatalogReloader{
		loader:        loader,
		index:         idx,
		search:        searchIdx,
		logger:        log.Component("catalog_reloader"),
		interval:      interval,
		watch:         watch,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// OnReload registers fn to run after every successful reload. Register
// before Start.
func (cr *CatalogReloader) OnReload(fn func(*domain.Catalog)) {
	cr.hooks = append(cr.hooks, fn)
}

// Start loads the catalog and begins the reload loop.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	var watcher *fsnotify.Watcher
	if cr.watch && cr.loader.FilePath() != "" {
		w, err := cr.newWatcher()
		if err != nil {
			cr.logger.Warn("catalog file watch disabled", logger.Error(err))
		} else {
			watcher = w
		}
	}

	go cr.run(ctx, watcher)
	return nil
}

// newWatcher watches the directory of the catalog file, so that editors
// replacing the file on save are still seen.
func (cr *CatalogReloader) newWatcher() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(cr.loader.FilePath())
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	cr.logger.Info("watching catalog file", logger.String("path", cr.loader.FilePath()))
	return w, nil
}

func (cr *CatalogReloader) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(cr.doneCh)

	ticker := time.NewTicker(cr.interval)
	defer ticker.Stop()

	var (
		events  <-chan fsnotify.Event
		errs    <-chan error
		settle  *time.Timer
		settled <-chan time.Time
	)
	if watcher != nil {
		defer watcher.Close()
		events, errs = watcher.Events, watcher.Errors
	}
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	target := filepath.Clean(cr.loader.FilePath())

	for {
		select {
		case <-ticker.C:
			cr.reloadLogged(ctx, "interval")
		case <-cr.manualTrigger:
			cr.logger.Info("manual reload triggered")
			cr.reloadLogged(ctx, "manual")
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(watchDebounce)
			} else {
				settle.Reset(watchDebounce)
			}
			settled = settle.C
		case <-settled:
			settled = nil
			cr.reloadLogged(ctx, "file")
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			cr.logger.Warn("catalog watcher error", logger.Error(err))
		case <-cr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (cr *CatalogReloader) reloadLogged(ctx context.Context, trigger string) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("failed to reload catalog, keeping the previous one",
			logger.String("trigger", trigger),
			logger.Error(err))
	}
}

// Stop stops the reloader and waits for its loop to exit.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
	select {
	case <-cr.doneCh:
	case <-time.After(5 * time.Second):
		cr.logger.Warn("catalog reloader did not stop in time")
	}
}

// Reload loads the catalog and swaps it into the memory and search indexes.
// On failure nothing is swapped.
func (cr *CatalogReloader) Reload(_ context.Context) error {
	cr.reloadMu.Lock()
	defer cr.reloadMu.Unlock()

	cat, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog from %s: %w", cr.loader.Source(), err)
	}

	cr.index.Update(cat)

	// The search index is secondary; lookups keep working without it.
	if cr.search != nil {
		if err := cr.search.Rebuild(cat); err != nil {
			cr.logger.Warn("failed to rebuild search index", logger.Error(err))
		}
	}

	for _, fn := range cr.hooks {
		fn(cat)
	}

	cr.logger.Info("catalog loaded",
		logger.String("source", cr.loader.Source()),
		logger.Int("confessions", len(cat.Confessions)),
		logger.Int("hymns", len(cat.Hymns)),
		logger.Int("connections", len(cat.Connections)))
	return nil
}
