package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool           `json:"ok"`
	Loaded     map[string]int `json:"loaded,omitempty"`
	Documents  *uint64        `json:"documents,omitempty"`
	Backend    string         `json:"backend,omitempty"`
	LastReload string         `json:"last_reload,omitempty"`
	Mode       string         `json:"mode,omitempty"`
	Impact     string         `json:"impact,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type infraResponse struct {
	Mode         string                     `json:"mode"`
	Components   map[string]componentStatus `json:"components"`
	ChatSessions int                        `json:"chat_sessions"`
}

const probeTimeout = 2 * time.Second

// Infra probes every component concurrently and summarizes the service mode.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			mu         sync.Mutex
			components = make(map[string]componentStatus, 4)
		)
		set := func(name string, s componentStatus) {
			mu.Lock()
			components[name] = s
			mu.Unlock()
		}

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error { set("catalog", checkCatalog(d)); return nil })
		g.Go(func() error { set("store", checkStore(ctx, d)); return nil })
		g.Go(func() error { set("search", checkSearch(d)); return nil })
		g.Go(func() error { set("generation", checkGeneration(d)); return nil })
		_ = g.Wait()

		sessions := 0
		if d.Chat != nil {
			sessions = d.Chat.Len()
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:         determineMode(components),
			Components:   components,
			ChatSessions: sessions,
		})
	}
}

// determineMode is "critical" without a catalog or a store, "degraded" when
// search or generation is missing and "full" otherwise.
func determineMode(components map[string]componentStatus) string {
	for _, name := range []string{"catalog", "store"} {
		if c, ok := components[name]; ok && !c.OK {
			return "critical"
		}
	}
	for _, name := range []string{"search", "generation"} {
		if c, ok := components[name]; ok && !c.OK {
			return "degraded"
		}
	}
	return "full"
}

func checkCatalog(d deps.Deps) componentStatus {
	if d.Catalog == nil {
		return componentStatus{Error: "not initialized"}
	}
	lastReload := "never"
	if t := d.Catalog.LastReload(); !t.IsZero() {
		lastReload = t.Format("2006-01-02 15:04:05")
	}
	counts := d.Catalog.Counts()
	return componentStatus{
		OK:         counts["confessions"] > 0,
		Loaded:     counts,
		LastReload: lastReload,
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{Error: "not initialized", Impact: "notebook-disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			Backend: d.Store.Backend(),
			Impact:  "notebook-unavailable",
			Error:   err.Error(),
		}
	}
	return componentStatus{OK: true, Backend: d.Store.Backend()}
}

func checkSearch(d deps.Deps) componentStatus {
	if d.Search == nil {
		return componentStatus{Mode: "disabled", Impact: "catalog-search-disabled", Error: "not initialized"}
	}
	n, err := d.Search.DocumentCount()
	if err != nil {
		return componentStatus{Impact: "catalog-search-disabled", Error: err.Error()}
	}
	return componentStatus{OK: n > 0, Documents: &n, Mode: "bleve"}
}

func checkGeneration(d deps.Deps) componentStatus {
	if d.Generation == nil || !d.Generation.Configured() {
		return componentStatus{
			Mode:   "unconfigured",
			Impact: "chat-and-retrieval-disabled",
			Error:  "no API key",
		}
	}
	return componentStatus{OK: true, Mode: "genai"}
}
