package ccel

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	indentRe          = regexp.MustCompile(`\n[ \t]+`)
	paragraphBreakRe  = regexp.MustCompile(`\n{2,}`)
	headingRe         = regexp.MustCompile(`(?i)^(#+\s*)?(BOOK|CHAPTER)\s+[IVX]+$`)
	headingMarkRe     = regexp.MustCompile(`^#+\s*`)
	hasBookRe         = regexp.MustCompile(`(?im)^\s*BOOK\s+[IVX]+\s*$`)
	hasChapterRe      = regexp.MustCompile(`(?im)^\s*CHAPTER\s+[IVX]+\s*$`)
)

// minDedupeLength is the shortest paragraph dropped when repeated further down.
const minDedupeLength = 40

// Clean normalizes a chapter text, whatever its origin: whitespace is
// collapsed, repeated headings and long paragraphs are kept once, and the
// BOOK and CHAPTER headings of c are added when missing.
func Clean(raw string, c Chapter) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = indentRe.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)

	var paragraphs []string
	for _, p := range paragraphBreakRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	combined := strings.TrimSpace(strings.Join(dedupe(paragraphs), "\n\n"))

	var headings []string
	if !hasBookRe.MatchString(combined) {
		headings = append(headings, "BOOK "+c.BookRoman())
	}
	if !hasChapterRe.MatchString(combined) {
		headings = append(headings, "CHAPTER "+c.ChapterRoman())
	}
	if len(headings) > 0 {
		combined = strings.Join(headings, "\n") + "\n\n" + combined
	}
	return strings.TrimSpace(combined)
}

func dedupe(paragraphs []string) []string {
	var (
		out      []string
		seen     = map[string]bool{}
		headings = map[string]bool{}
	)
	last := func() string {
		if len(out) == 0 {
			return ""
		}
		return out[len(out)-1]
	}

	for _, p := range paragraphs {
		norm := strings.TrimSpace(collapseWhitespace(p))

		if headingRe.MatchString(norm) {
			key := strings.ToUpper(headingMarkRe.ReplaceAllString(norm, ""))
			if headings[key] {
				continue
			}
			headings[key] = true
			if last() != norm {
				out = append(out, norm)
			}
			continue
		}

		if len(norm) >= minDedupeLength {
			if seen[norm] {
				continue
			}
			seen[norm] = true
		}
		if last() != norm {
			out = append(out, norm)
		}
	}
	return out
}
