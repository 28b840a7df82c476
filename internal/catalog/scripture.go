package catalog

import (
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

// Leading book name of a reference, ex: "1 John" in "1 John 4:8", "Song of Solomon" in "Song of Solomon 2:4".
var bookPrefixRe = regexp.MustCompile(`^(\d?\s*[A-Za-z]+(?:\s+of\s+[A-Za-z]+)?)\s`)

// Testament reports which testament a scripture reference belongs to.
// Unknown books default to the New Testament.
func Testament(cat *domain.Catalog, reference string) domain.Testament {
	m := bookPrefixRe.FindStringSubmatch(strings.TrimSpace(reference) + " ")
	if m == nil {
		return domain.NewTestament
	}
	if b, ok := FindBook(cat, m[1]); ok {
		return b.Testament
	}
	return domain.NewTestament
}

// FindBook matches a book by name, ignoring case and inner spacing.
func FindBook(cat *domain.Catalog, name string) (domain.BibleBook, bool) {
	want := normalizeBook(name)
	for _, b := range cat.Books {
		if normalizeBook(b.Name) == want {
			return b, true
		}
	}
	// "Psalm 23" is written singular
	if want == "psalm" {
		return FindBook(cat, "Psalms")
	}
	return domain.BibleBook{}, false
}

func normalizeBook(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
