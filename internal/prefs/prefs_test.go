package prefs

import (
	"context"
	"testing"

	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/store"
	"github.com/MrSnakeDoc/confessio/internal/store/memory"
)

func known(id string) bool { return id == "esv" || id == "geneva-bible" }

func TestDefaults(t *testing.T) {
	s := New(memory.New(), known)
	got := s.Get(context.Background())

	if got.Theme != ThemeLight {
		t.Errorf("Theme = %v, want %v", got.Theme, ThemeLight)
	}
	if got.DefaultBibleID != "esv" {
		t.Errorf("DefaultBibleID = %v, want esv", got.DefaultBibleID)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        Preferences
		wantTheme Theme
		wantBible string
		wantErr   bool
	}{
		{name: "dark theme only", in: Preferences{Theme: ThemeDark}, wantTheme: ThemeDark, wantBible: "esv"},
		{name: "bible only", in: Preferences{DefaultBibleID: "geneva-bible"}, wantTheme: ThemeLight, wantBible: "geneva-bible"},
		{name: "unknown theme", in: Preferences{Theme: "sepia"}, wantErr: true},
		{name: "unknown bible", in: Preferences{DefaultBibleID: "kjv"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(memory.New(), known)
			got, err := s.Update(ctx, tt.in)
			if tt.wantErr {
				if !apperr.Is(err, apperr.ErrValidation) {
					t.Errorf("Update() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if got.Theme != tt.wantTheme || got.DefaultBibleID != tt.wantBible {
				t.Errorf("Update() = %+v, want {%v %v}", got, tt.wantTheme, tt.wantBible)
			}
		})
	}
}

func TestGetIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, store.KeyTheme, []byte("purple"), 0)
	_ = kv.Set(ctx, store.KeyDefaultBible, []byte("removed-version"), 0)

	got := New(kv, known).Get(ctx)
	if got.Theme != ThemeLight || got.DefaultBibleID != DefaultBibleID {
		t.Errorf("Get() = %+v, want defaults", got)
	}

	if err := New(kv, known).Reset(ctx); err != nil {
		t.Errorf("Reset() error = %v", err)
	}
}
