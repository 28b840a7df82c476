// Package biblelink builds deep links that open a Bible reference in
// external study applications.
package biblelink

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// bookCodes are the USFM-style codes the applications address books by.
var bookCodes = map[string]string{
	"Genesis": "GEN", "Exodus": "EXO", "Leviticus": "LEV", "Numbers": "NUM", "Deuteronomy": "DEU",
	"Joshua": "JSH", "Judges": "JDG", "Ruth": "RUT", "1 Samuel": "1SA", "2 Samuel": "2SA",
	"1 Kings": "1KI", "2 Kings": "2KI", "1 Chronicles": "1CH", "2 Chronicles": "2CH",
	"Ezra": "EZR", "Nehemiah": "NEH", "Esther": "EST", "Job": "JOB", "Psalms": "PSA", "Psalm": "PSA",
	"Proverbs": "PRO", "Ecclesiastes": "ECC", "Song of Solomon": "SNG", "Isaiah": "ISA",
	"Jeremiah": "JER", "Lamentations": "LAM", "Ezekiel": "EZK", "Daniel": "DAN", "Hosea": "HOS",
	"Joel": "JOL", "Amos": "AMO", "Obadiah": "OBA", "Jonah": "JON", "Micah": "MIC", "Nahum": "NAM",
	"Habakkuk": "HAB", "Zephaniah": "ZEP", "Haggai": "HAG", "Zechariah": "ZEC", "Malachi": "MAL",
	"Matthew": "MAT", "Mark": "MRK", "Luke": "LUK", "John": "JHN", "Acts": "ACT", "Romans": "ROM",
	"1 Corinthians": "1CO", "2 Corinthians": "2CO", "Galatians": "GAL", "Ephesians": "EPH",
	"Philippians": "PHP", "Colossians": "COL", "1 Thessalonians": "1TH", "2 Thessalonians": "2TH",
	"1 Timothy": "1TI", "2 Timothy": "2TI", "Titus": "TIT", "Philemon": "PHM", "Hebrews": "HEB",
	"James": "JAS", "1 Peter": "1PE", "2 Peter": "2PE", "1 John": "1JO", "2 John": "2JO",
	"3 John": "3JO", "Jude": "JUD", "Revelation": "REV",
}

// Ref is a parsed reference. Verse defaults to "1".
type Ref struct {
	Book    string
	Chapter string
	Verse   string
	// Code is the book code, or the first three letters of an unknown book upper-cased.
	Code string
}

var refRe = regexp.MustCompile(`((?:\d\s)?[A-Za-z\s]+)\s+(\d+)(?::(\d+))?`)

// Parse extracts book, chapter and first verse, ex: "1 Peter 1:3-5".
func Parse(ref string) (Ref, bool) {
	m := refRe.FindStringSubmatch(ref)
	if m == nil {
		return Ref{}, false
	}

	r := Ref{Book: strings.TrimSpace(m[1]), Chapter: m[2], Verse: m[3]}
	if r.Verse == "" {
		r.Verse = "1"
	}
	if code, ok := bookCodes[r.Book]; ok {
		r.Code = code
	} else {
		r.Code = strings.ToUpper(r.Book[:min(3, len(r.Book))])
	}
	return r, true
}

// BookCode returns the code of a full book name.
func BookCode(book string) (string, bool) {
	code, ok := bookCodes[book]
	return code, ok
}

// App is an external Bible application.
type App struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	link func(ref string) string
}

// URL returns the link opening ref in the application.
func (a App) URL(ref string) string { return a.link(ref) }

// escape encodes like a URI component: spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var apps = []App{
	{
		ID: "logos", Name: "Logos", Color: "#004C91",
		link: func(ref string) string {
			p, ok := Parse(ref)
			if !ok {
				return "logosres:bible;ref=" + ref
			}
			return fmt.Sprintf("logosres:bible;ref=Bible.%s%s.%s", p.Code, p.Chapter, p.Verse)
		},
	},
	{
		ID: "olivetree", Name: "Olive Tree", Color: "#2D5A27",
		link: func(ref string) string {
			p, ok := Parse(ref)
			if !ok {
				return "olivetree://bible/" + ref
			}
			return fmt.Sprintf("olivetree://bible/%s.%s.%s", strings.Join(strings.Fields(p.Book), ""), p.Chapter, p.Verse)
		},
	},
	{
		ID: "youversion", Name: "YouVersion", Color: "#654B3E",
		link: func(ref string) string {
			p, ok := Parse(ref)
			if !ok {
				return "https://www.bible.com/search/bible?q=" + escape(ref)
			}
			// 59 is the ESV
			return fmt.Sprintf("https://www.bible.com/bible/59/%s.%s.%s", p.Code, p.Chapter, p.Verse)
		},
	},
	{
		ID: "blueletter", Name: "Blue Letter", Color: "#34495E",
		link: func(ref string) string {
			return "https://www.blueletterbible.org/search/preSearch.cfm?Criteria=" + escape(ref)
		},
	},
}

// Apps lists the supported applications in display order.
func Apps() []App {
	out := make([]App, len(apps))
	copy(out, apps)
	return out
}

// Link is one application link for a reference.
type Link struct {
	App
	URL string `json:"url"`
}

// Links returns the link of every application for ref.
func Links(ref string) []Link {
	out := make([]Link, 0, len(apps))
	for _, a := range apps {
		out = append(out, Link{App: a, URL: a.URL(ref)})
	}
	return out
}
