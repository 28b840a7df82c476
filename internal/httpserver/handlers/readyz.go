package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready once the catalog is loaded and the store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Catalog == nil || d.Catalog.LastReload().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: "catalog not loaded"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness probe failed", logger.String("store", d.Store.Backend()), logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: "store unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
