package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/search"
)

type confessionDetail struct {
	domain.Confession
	Saved bool `json:"saved"`
}

type navigationResponse struct {
	Confession string           `json:"confession"`
	Items      []domain.NavItem `json:"items"`
}

func Confessions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.FilterConfessions(d.Catalog.Catalog(), r.URL.Query().Get("q")))
	}
}

// Confession returns one document and whether it is in the notebook.
func Confession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c, ok := d.Catalog.Confession(id)
		if !ok {
			writeError(w, r, d, apperr.NotFoundf("confession %q not found", id))
			return
		}
		writeJSON(w, http.StatusOK, confessionDetail{
			Confession: c,
			Saved:      d.Notebook.IsSaved(r.Context(), c.ID, domain.ItemConfession),
		})
	}
}

func Navigation(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c, ok := d.Catalog.Confession(id)
		if !ok {
			writeError(w, r, d, apperr.NotFoundf("confession %q not found", id))
			return
		}
		writeJSON(w, http.StatusOK, navigationResponse{
			Confession: c.ID,
			Items:      catalog.Navigation(d.Catalog.Catalog(), c),
		})
	}
}

func Bibles(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.FilterBibles(d.Catalog.Catalog(), r.URL.Query().Get("q")))
	}
}

// Books lists the canon, optionally one testament (?testament=Old|New).
func Books(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := d.Catalog.Catalog()
		switch t := r.URL.Query().Get("testament"); {
		case t == "":
			writeJSON(w, http.StatusOK, cat.Books)
		case strings.EqualFold(t, string(domain.OldTestament)):
			writeJSON(w, http.StatusOK, catalog.BooksByTestament(cat, domain.OldTestament))
		case strings.EqualFold(t, string(domain.NewTestament)):
			writeJSON(w, http.StatusOK, catalog.BooksByTestament(cat, domain.NewTestament))
		default:
			writeError(w, r, d, apperr.Validationf("unknown testament %q", t))
		}
	}
}

func Hymns(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.FilterHymns(d.Catalog.Catalog(), r.URL.Query().Get("q")))
	}
}

// Theologians are grouped by century.
func Theologians(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.TheologiansByCentury(d.Catalog.Catalog()))
	}
}

func Timeline(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Timeline(d.Catalog.Catalog()))
	}
}

func Connections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Catalog().Connections)
	}
}

func Systematics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Catalog().Systematics)
	}
}

func Topics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Catalog().StudyTopics)
	}
}

// CatalogSearch runs a full-text query over the catalog (?q=&type=&limit=).
func CatalogSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Search == nil {
			writeError(w, r, d, apperr.NotConfigured("catalog search is disabled"))
			return
		}
		q := r.URL.Query()
		limit := 0
		if s := q.Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				writeError(w, r, d, apperr.Validationf("invalid limit %q", s))
				return
			}
			limit = n
		}

		hits, err := d.Search.Search(r.Context(), search.Params{
			Query: q.Get("q"),
			Types: search.ParseTypes(q.Get("type")),
			Limit: limit,
		})
		if err != nil {
			writeError(w, r, d, apperr.Internal("catalog search failed", err))
			return
		}
		if hits == nil {
			hits = []search.Hit{}
		}
		writeJSON(w, http.StatusOK, hits)
	}
}
