package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
)

type topicRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type conceptRequest struct {
	Title string `json:"title" validate:"required"`
}

type compareRequest struct {
	DocA  string `json:"docA" validate:"required"`
	DocB  string `json:"docB" validate:"required,nefield=DocA"`
	Topic string `json:"topic" validate:"required"`
}

func Systematic(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req topicRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.Systematic(r.Context(), req.Topic))
	}
}

// Concept analyses a doctrine of the connections graph.
func Concept(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conceptRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		p, err := d.Retrieval.Concept(r.Context(), req.Title)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func Compare(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compareRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		p, err := d.Retrieval.Compare(r.Context(), req.DocA, req.DocB, req.Topic)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// Offline downloads a whole document into the notebook.
func Offline(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := d.Retrieval.FullDocument(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}
