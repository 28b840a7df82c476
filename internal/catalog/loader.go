// Package catalog loads and queries the static reference corpus.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

//go:embed data/catalog.yaml
var embedded []byte

// Embedded returns the raw corpus compiled into the binary.
func Embedded() []byte { return embedded }

// Loader reads the catalog from an override file, or from the embedded copy
// when no file is configured.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Source describes where Load reads from.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded"
	}
	return l.filePath
}

// FilePath is the override file, empty when the embedded copy is used.
func (l *Loader) FilePath() string { return l.filePath }

func (l *Loader) Load() (*domain.Catalog, error) {
	data := embedded
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*domain.Catalog, error) {
	var cat domain.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	if err := Validate(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the cross references a running server relies on.
func Validate(cat *domain.Catalog) error {
	if len(cat.Confessions) == 0 {
		return fmt.Errorf("catalog has no confessions")
	}
	if len(cat.Bibles) == 0 {
		return fmt.Errorf("catalog has no bible versions")
	}
	if len(cat.StudyTopics) == 0 {
		return fmt.Errorf("catalog has no study topics")
	}

	if err := uniqueIDs("confession", cat.Confessions, func(c domain.Confession) string { return c.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("bible", cat.Bibles, func(b domain.BibleVersion) string { return b.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("hymn", cat.Hymns, func(h domain.Hymn) string { return h.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("theologian", cat.Theologians, func(t domain.Theologian) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("book", cat.Books, func(b domain.BibleBook) string { return b.Name }); err != nil {
		return err
	}

	if cat.DefaultBible == "" {
		cat.DefaultBible = cat.Bibles[0].ID
	}
	found := false
	for _, b := range cat.Bibles {
		if b.ID == cat.DefaultBible {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default bible %q is not a known version", cat.DefaultBible)
	}

	for _, b := range cat.Books {
		if b.Testament != domain.OldTestament && b.Testament != domain.NewTestament {
			return fmt.Errorf("book %q has invalid testament %q", b.Name, b.Testament)
		}
		if b.Chapters <= 0 {
			return fmt.Errorf("book %q has no chapters", b.Name)
		}
	}

	for id := range cat.Outlines {
		if _, ok := findConfession(cat, id); !ok {
			return fmt.Errorf("outline for unknown confession %q", id)
		}
	}

	return nil
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := id(it)
		if k == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func findConfession(cat *domain.Catalog, id string) (domain.Confession, bool) {
	for _, c := range cat.Confessions {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Confession{}, false
}
