package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/biblelink"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/lexer"
)

type linksResponse struct {
	Reference string           `json:"reference"`
	Links     []biblelink.Link `json:"links"`
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type shareResponse struct {
	View    domain.View      `json:"view"`
	Context contextView      `json:"context"`
	Card    domain.ShareCard `json:"card"`
}

// Links returns the deep links opening ?ref= in external Bible applications.
func Links(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimSpace(r.URL.Query().Get("ref"))
		if _, ok := biblelink.Parse(ref); !ok {
			writeError(w, r, d, apperr.Validationf("not a scripture reference: %q", ref))
			return
		}
		writeJSON(w, http.StatusOK, linksResponse{Reference: ref, Links: biblelink.Links(ref)})
	}
}

// Tokenize splits text into plain runs and interactive references.
func Tokenize(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenizeRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		tokens := d.Lexer.Lexer().Tokenize(req.Text)
		if tokens == nil {
			tokens = []lexer.Token{}
		}
		writeJSON(w, http.StatusOK, tokens)
	}
}

// Share decodes a link query (?view=&confession=&bible=&hymn=&concept=) and
// returns the card to share it with.
func Share(d deps.Deps) http.HandlerFunc {
	base, err := url.Parse(d.PublicURL)
	if err != nil || d.PublicURL == "" {
		base = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := domain.ParseView(r.URL.Query(), d.Catalog)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownView) {
				writeError(w, r, d, apperr.Validation(err.Error()))
				return
			}
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, shareResponse{
			View:    v,
			Context: contextView{Kind: v.Context.Kind(), Title: v.Context.Title(), RefID: v.Context.RefID()},
			Card:    domain.Share(v, *base),
		})
	}
}
