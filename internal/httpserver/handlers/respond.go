package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/logger"
)

// maxBodyBytes bounds request bodies. Offline notes can carry a whole document.
const maxBodyBytes = 4 << 20

type errorResponse struct {
	Error *apperr.Error `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err under its code. Uncoded errors are logged and hidden
// behind a generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		d.Logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		e = apperr.Internal("internal error", err)
	}
	writeJSON(w, e.HTTPStatus(), errorResponse{Error: e})
}

// decodeJSON reads the body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, d deps.Deps, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Validationf("request body exceeds %d bytes", tooBig.Limit)
		}
		return apperr.Validationf("invalid JSON body: %v", err)
	}
	if d.Validator == nil {
		return nil
	}
	return d.Validator.Validate(dst)
}
