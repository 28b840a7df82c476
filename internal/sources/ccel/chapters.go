// Package ccel reads Augustine's Confessions one chapter a day from the
// Christian Classics Ethereal Library.
package ccel

import (
	"fmt"
	"strings"
)

// chapterCounts lists the chapters of each of the thirteen books.
var chapterCounts = []int{18, 10, 12, 16, 14, 16, 21, 12, 13, 43, 31, 32, 39}

// TotalChapters is the length of the reading cycle.
var TotalChapters = func() int {
	n := 0
	for _, c := range chapterCounts {
		n += c
	}
	return n
}()

// Chapter addresses one chapter of the Confessions. Both fields start at 1.
type Chapter struct {
	Book   int
	Number int
}

// ChapterForDay maps a day of the year onto the reading cycle.
func ChapterForDay(dayOfYear int) Chapter {
	remaining := dayOfYear % TotalChapters
	for i, count := range chapterCounts {
		if remaining < count {
			return Chapter{Book: i + 1, Number: remaining + 1}
		}
		remaining -= count
	}
	return Chapter{Book: 1, Number: 1}
}

func (c Chapter) BookRoman() string    { return Roman(c.Book) }
func (c Chapter) ChapterRoman() string { return Roman(c.Number) }

// Reference is the heading used in prompts, ex: "BOOK IV · CHAPTER XII".
func (c Chapter) Reference() string {
	return fmt.Sprintf("BOOK %s · CHAPTER %s", c.BookRoman(), c.ChapterRoman())
}

// Topic is the human label, ex: "Augustine Confessions Book IV Chapter 12".
func (c Chapter) Topic() string {
	return fmt.Sprintf("Augustine Confessions Book %s Chapter %d", c.BookRoman(), c.Number)
}

// path is the page name on ccel.org, ex: "confess.iv.xii.html".
func (c Chapter) path() string {
	return fmt.Sprintf("confess.%s.%s.html", strings.ToLower(c.BookRoman()), strings.ToLower(c.ChapterRoman()))
}

var numerals = []struct {
	value int
	roman string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman renders a positive integer in upper-case roman numerals.
func Roman(n int) string {
	var b strings.Builder
	for _, r := range numerals {
		for n >= r.value {
			b.WriteString(r.roman)
			n -= r.value
		}
	}
	return b.String()
}
