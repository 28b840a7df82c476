package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
)

type savedResponse struct {
	Saved bool              `json:"saved"`
	Item  *domain.SavedItem `json:"item,omitempty"`
}

type noteRequest struct {
	Note string `json:"note"`
}

// NotebookList returns every saved item, newest first (?type= narrows it).
func NotebookList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := d.Notebook.List(r.Context())
		if t := domain.ItemType(r.URL.Query().Get("type")); t != "" {
			if !t.Valid() {
				writeError(w, r, d, apperr.Validationf("unknown item type %q", t))
				return
			}
			filtered := make([]domain.SavedItem, 0, len(items))
			for _, it := range items {
				if it.Type == t {
					filtered = append(filtered, it)
				}
			}
			items = filtered
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func NotebookSave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c domain.Candidate
		if err := decodeJSON(w, r, d, &c); err != nil {
			writeError(w, r, d, err)
			return
		}
		item, created, err := d.Notebook.Add(r.Context(), c)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, item)
	}
}

func NotebookGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := d.Notebook.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// NotebookSaved answers whether (type, refId) is in the notebook.
func NotebookSaved(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		t, refID := domain.ItemType(q.Get("type")), q.Get("refId")
		if !t.Valid() || refID == "" {
			writeError(w, r, d, apperr.Validation("type and refId are required"))
			return
		}
		item, ok := d.Notebook.Find(r.Context(), t, refID)
		if !ok {
			writeJSON(w, http.StatusOK, savedResponse{})
			return
		}
		writeJSON(w, http.StatusOK, savedResponse{Saved: true, Item: &item})
	}
}

// NotebookNote replaces the notes of an item. Unknown ids are ignored.
func NotebookNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		if err := d.Notebook.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.Note); err != nil {
			writeError(w, r, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotebookDelete removes an item. Unknown ids are ignored.
func NotebookDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Notebook.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, r, d, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func NotebookToggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c domain.Candidate
		if err := decodeJSON(w, r, d, &c); err != nil {
			writeError(w, r, d, err)
			return
		}
		item, saved, err := d.Notebook.Toggle(r.Context(), c)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, savedResponse{Saved: saved, Item: &item})
	}
}
