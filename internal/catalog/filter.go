package catalog

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func anyContains(list []string, needle string) bool {
	return slices.ContainsFunc(list, func(s string) bool { return contains(s, needle) })
}

// FilterConfessions matches q against title, description, author and tags.
// An empty q returns everything.
func FilterConfessions(cat *domain.Catalog, q string) []domain.Confession {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.Confession, 0, len(cat.Confessions))
	for _, c := range cat.Confessions {
		if q == "" || contains(c.Title, q) || contains(c.Description, q) || contains(c.Author, q) || anyContains(c.Tags, q) {
			out = append(out, c)
		}
	}
	return out
}

// FilterHymns matches q against title, author, description and tags.
func FilterHymns(cat *domain.Catalog, q string) []domain.Hymn {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.Hymn, 0, len(cat.Hymns))
	for _, h := range cat.Hymns {
		if q == "" || contains(h.Title, q) || contains(h.Author, q) || contains(h.Description, q) || anyContains(h.Tags, q) {
			out = append(out, h)
		}
	}
	return out
}

// FilterBibles matches q against title, short title, description and tags.
func FilterBibles(cat *domain.Catalog, q string) []domain.BibleVersion {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]domain.BibleVersion, 0, len(cat.Bibles))
	for _, b := range cat.Bibles {
		if q == "" || contains(b.Title, q) || contains(b.ShortTitle, q) || contains(b.Description, q) || anyContains(b.Tags, q) {
			out = append(out, b)
		}
	}
	return out
}

// Centuries is the display order of theologian groups.
var Centuries = []string{"16th Century", "17th Century", "18th Century", "19th Century", "20th Century"}

// CenturyGroup is the theologians of one century.
type CenturyGroup struct {
	Century     string              `json:"century"`
	Theologians []domain.Theologian `json:"theologians"`
}

// TheologiansByCentury groups theologians in Centuries order, skipping empty centuries.
func TheologiansByCentury(cat *domain.Catalog) []CenturyGroup {
	groups := make([]CenturyGroup, 0, len(Centuries))
	for _, c := range Centuries {
		var members []domain.Theologian
		for _, t := range cat.Theologians {
			if t.Century == c {
				members = append(members, t)
			}
		}
		if len(members) > 0 {
			groups = append(groups, CenturyGroup{Century: c, Theologians: members})
		}
	}
	return groups
}

// BooksByTestament splits the canon, keeping catalog order.
func BooksByTestament(cat *domain.Catalog, t domain.Testament) []domain.BibleBook {
	out := make([]domain.BibleBook, 0, len(cat.Books))
	for _, b := range cat.Books {
		if b.Testament == t {
			out = append(out, b)
		}
	}
	return out
}

// TimelineEntry is one dated point on the historical timeline.
type TimelineEntry struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
	Type  string `json:"type"` // "theologian" | "confession"
	RefID string `json:"refId"`
}

// Timeline merges theologian birth years and confession dates, oldest first.
// Entries without a year are left out.
func Timeline(cat *domain.Catalog) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(cat.Theologians)+len(cat.Confessions))
	for _, t := range cat.Theologians {
		if y, ok := firstYear(t.Dates); ok {
			entries = append(entries, TimelineEntry{Year: y, Label: t.Name, Type: "theologian", RefID: t.ID})
		}
	}
	for _, c := range cat.Confessions {
		if y, ok := firstYear(c.Date); ok {
			entries = append(entries, TimelineEntry{Year: y, Label: c.ShortTitle, Type: "confession", RefID: c.ID})
		}
	}
	slices.SortStableFunc(entries, func(a, b TimelineEntry) int { return a.Year - b.Year })
	return entries
}

// firstYear reads the first run of digits in s, ex: 1509 in "1509–1564",
// 1560 in "c.1560". Ordinals such as "6th Century" are not years.
func firstYear(s string) (int, bool) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	rest := s[start:]
	end := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		end = len(rest)
	}
	if end < 3 {
		return 0, false
	}
	y, err := strconv.Atoi(rest[:end])
	return y, err == nil
}
