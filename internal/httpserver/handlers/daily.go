package handlers

import (
	"context"
	"net/http"
	"strconv"

	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/retrieval"
)

type dailyFunc func(ctx context.Context, refresh bool) retrieval.Daily

// daily serves one of the pages that change every day. ?refresh=true skips
// the cached copy.
func daily(d deps.Deps, get func(deps.Deps) dailyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := false
		if s := r.URL.Query().Get("refresh"); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				writeError(w, r, d, apperr.Validationf("invalid refresh %q", s))
				return
			}
			refresh = b
		}
		writeJSON(w, http.StatusOK, get(d)(r.Context(), refresh))
	}
}

func Devotional(d deps.Deps) http.HandlerFunc {
	return daily(d, func(d deps.Deps) dailyFunc { return d.Retrieval.Devotional })
}

func Study(d deps.Deps) http.HandlerFunc {
	return daily(d, func(d deps.Deps) dailyFunc { return d.Retrieval.Study })
}

// Reading is the chapter of Augustine's Confessions for the day.
func Reading(d deps.Deps) http.HandlerFunc {
	return daily(d, func(d deps.Deps) dailyFunc { return d.Retrieval.Reading })
}
