package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
)

type verbatimRequest struct {
	Reference string         `json:"reference" validate:"required"`
	Kind      domain.RefKind `json:"kind" validate:"required,oneof=scripture confession"`
	// BibleID is the translation in focus, if any.
	BibleID string `json:"bibleId"`
}

type referenceRequest struct {
	Reference string `json:"reference" validate:"required"`
}

type termRequest struct {
	Term string `json:"term" validate:"required"`
}

type searchResultRequest struct {
	Document  string `json:"document" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Summary   string `json:"summary"`
}

type crossRefsRequest struct {
	Reference string `json:"reference" validate:"required"`
	// Quoted is the text the standards are related to, when already fetched.
	Quoted string `json:"quoted"`
}

type crossRefsResponse struct {
	Reference string   `json:"reference"`
	Standards []string `json:"standards"`
}

type verseRequest struct {
	Verse string `json:"verse" validate:"required"`
}

type verseCitationsResponse struct {
	Verse     string                  `json:"verse"`
	Citations []domain.CrossReference `json:"citations"`
}

type crossRefContextRequest struct {
	Document  string `json:"document" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Context   string `json:"context"`
}

// Verbatim quotes a scripture or confession reference.
func Verbatim(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verbatimRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}

		var active *domain.BibleVersion
		if req.BibleID != "" {
			v, ok := d.Catalog.Bible(req.BibleID)
			if !ok {
				writeError(w, r, d, apperr.NotFoundf("bible version %q not found", req.BibleID))
				return
			}
			active = &v
		}
		writeJSON(w, http.StatusOK, d.Retrieval.Verbatim(r.Context(), req.Reference, req.Kind, active))
	}
}

// StructuredSearch answers a doctrinal term with citations. A malformed
// answer is an empty result, not an error.
func StructuredSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req termRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.SearchStructured(r.Context(), req.Term))
	}
}

func SearchResultText(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchResultRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.SearchResultText(r.Context(), domain.SearchResult(req)))
	}
}

// CrossRefs lists the standards related to a confession reference.
func CrossRefs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req crossRefsRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		standards := d.Retrieval.RelatedStandards(r.Context(), req.Reference, req.Quoted)
		if standards == nil {
			standards = []string{}
		}
		writeJSON(w, http.StatusOK, crossRefsResponse{Reference: req.Reference, Standards: standards})
	}
}

// VerseCitations lists the standards citing a Bible verse.
func VerseCitations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verseRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		citations := d.Retrieval.VerseCitations(r.Context(), req.Verse)
		if citations == nil {
			citations = []domain.CrossReference{}
		}
		writeJSON(w, http.StatusOK, verseCitationsResponse{Verse: req.Verse, Citations: citations})
	}
}

func VerseCitationContext(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req crossRefContextRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.CrossRefContext(r.Context(), domain.CrossReference(req)))
	}
}

func Interlinear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req referenceRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.Interlinear(r.Context(), req.Reference))
	}
}

func Latin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req referenceRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Retrieval.Latin(r.Context(), req.Reference))
	}
}
