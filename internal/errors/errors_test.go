package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeNotConfigured, http.StatusServiceUnavailable},
		{CodeUpstream, http.StatusBadGateway},
		{CodeBusy, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("loading item: %w", NotFoundf("item %s", "abc"))

	if !Is(err, ErrNotFound) {
		t.Errorf("Is(err, ErrNotFound) = false, want true")
	}
	if Is(err, ErrValidation) {
		t.Errorf("Is(err, ErrValidation) = true, want false")
	}
	if got := CodeOf(err); got != CodeNotFound {
		t.Errorf("CodeOf() = %v, want %v", got, CodeNotFound)
	}
}

func TestWrappedCause(t *testing.T) {
	cause := New("dial tcp: refused")
	err := Upstream("generation failed", cause)

	if !Is(err, cause) {
		t.Errorf("Is(err, cause) = false, want true")
	}
	if got, want := err.Error(), "generation failed: dial tcp: refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := CodeOf(New("plain")); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %v, want %v", got, CodeInternal)
	}
}
