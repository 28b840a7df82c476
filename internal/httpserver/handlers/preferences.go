package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/prefs"
)

func PreferencesGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Prefs.Get(r.Context()))
	}
}

// PreferencesUpdate stores the fields present in the body.
func PreferencesUpdate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p prefs.Preferences
		if err := decodeJSON(w, r, d, &p); err != nil {
			writeError(w, r, d, err)
			return
		}
		updated, err := d.Prefs.Update(r.Context(), p)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func PreferencesReset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Prefs.Reset(r.Context()); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Prefs.Get(r.Context()))
	}
}
