// Package prefs keeps the two user preferences: color theme and default translation.
package prefs

import (
	"context"
	"errors"
	"fmt"

	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/store"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultBibleID is used until the user picks a translation.
const DefaultBibleID = "esv"

type Preferences struct {
	Theme          Theme  `json:"theme" validate:"omitempty,oneof=light dark"`
	DefaultBibleID string `json:"defaultBibleId"`
}

// BibleExists validates translation ids against the catalog.
type BibleExists func(id string) bool

type Service struct {
	kv    store.KV
	known BibleExists
}

func New(kv store.KV, known BibleExists) *Service {
	return &Service{kv: kv, known: known}
}

// Get returns stored preferences, with defaults for anything unset or unreadable.
func (s *Service) Get(ctx context.Context) Preferences {
	p := Preferences{Theme: ThemeLight, DefaultBibleID: DefaultBibleID}

	if v, err := s.kv.Get(ctx, store.KeyTheme); err == nil {
		if t := Theme(v); t == ThemeLight || t == ThemeDark {
			p.Theme = t
		}
	}
	if v, err := s.kv.Get(ctx, store.KeyDefaultBible); err == nil && len(v) > 0 {
		if s.known == nil || s.known(string(v)) {
			p.DefaultBibleID = string(v)
		}
	}
	return p
}

// Update stores the non-empty fields of p and returns the result.
func (s *Service) Update(ctx context.Context, p Preferences) (Preferences, error) {
	if p.Theme != "" {
		if p.Theme != ThemeLight && p.Theme != ThemeDark {
			return Preferences{}, apperr.Validationf("unknown theme %q", p.Theme)
		}
		if err := s.kv.Set(ctx, store.KeyTheme, []byte(p.Theme), 0); err != nil {
			return Preferences{}, fmt.Errorf("failed to store theme: %w", err)
		}
	}

	if p.DefaultBibleID != "" {
		if s.known != nil && !s.known(p.DefaultBibleID) {
			return Preferences{}, apperr.Validationf("unknown bible %q", p.DefaultBibleID)
		}
		if err := s.kv.Set(ctx, store.KeyDefaultBible, []byte(p.DefaultBibleID), 0); err != nil {
			return Preferences{}, fmt.Errorf("failed to store default bible: %w", err)
		}
	}

	return s.Get(ctx), nil
}

// Reset forgets both preferences.
func (s *Service) Reset(ctx context.Context) error {
	return errors.Join(
		s.kv.Delete(ctx, store.KeyTheme),
		s.kv.Delete(ctx, store.KeyDefaultBible),
	)
}
