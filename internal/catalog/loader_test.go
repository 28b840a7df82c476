package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderEmbedded(t *testing.T) {
	loader := NewLoader("")
	if got := loader.Source(); got != "embedded" {
		t.Errorf("Source() = %q, want %q", got, "embedded")
	}

	cat, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Books) != 66 {
		t.Errorf("len(Books) = %d, want 66", len(cat.Books))
	}
	if cat.DefaultBible != "esv" {
		t.Errorf("DefaultBible = %q, want %q", cat.DefaultBible, "esv")
	}
	if len(cat.StudyTopics) != 15 {
		t.Errorf("len(StudyTopics) = %d, want 15", len(cat.StudyTopics))
	}
}

const minimalYAML = `
defaultBible: kjv
confessions:
  - id: wcf
    title: Westminster Confession of Faith
    shortTitle: WCF
    date: "1646"
bibles:
  - id: kjv
    title: King James Version
    shortTitle: KJV
books:
  - name: Genesis
    chapters: 50
    testament: Old
studyTopics: [Adoption]
outlines:
  wcf:
    - label: Ch. 1
      reference: WCF 1
`

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(path)
	if got := loader.Source(); got != path {
		t.Errorf("Source() = %q, want %q", got, path)
	}
	cat, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Confessions) != 1 || cat.Confessions[0].ID != "wcf" {
		t.Errorf("Confessions = %+v, want one wcf", cat.Confessions)
	}
	if len(cat.Outlines["wcf"]) != 1 {
		t.Errorf("Outlines[wcf] = %+v, want one entry", cat.Outlines["wcf"])
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{"bad yaml", func(string) string { return "confessions: [" }, "parse"},
		{"unknown default bible", func(s string) string { return strings.Replace(s, "defaultBible: kjv", "defaultBible: esv", 1) }, "default bible"},
		{"duplicate confession", func(s string) string {
			return strings.Replace(s, "bibles:", "  - id: wcf\n    title: again\nbibles:", 1)
		}, "duplicate confession"},
		{"bad testament", func(s string) string { return strings.Replace(s, "testament: Old", "testament: Apocrypha", 1) }, "testament"},
		{"orphan outline", func(s string) string { return strings.Replace(s, "outlines:\n  wcf:", "outlines:\n  bcf:", 1) }, "unknown confession"},
		{"no topics", func(s string) string { return strings.Replace(s, "studyTopics: [Adoption]", "studyTopics: []", 1) }, "study topics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(minimalYAML)))
			if err == nil {
				t.Fatalf("Parse() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseDefaultsBible(t *testing.T) {
	cat, err := Parse([]byte(strings.Replace(minimalYAML, "defaultBible: kjv\n", "", 1)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cat.DefaultBible != "kjv" {
		t.Errorf("DefaultBible = %q, want first bible %q", cat.DefaultBible, "kjv")
	}
}
