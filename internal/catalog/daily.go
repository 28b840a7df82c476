package catalog

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

// DateKey is the local calendar day used by daily caches, ex: "2026-03-02".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// LongDate formats t the way devotionals are headed, ex: "Monday, March 2, 2026".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// DayOfYear counts days since December 31 of the previous year in t's zone,
// so January 1 is day 1.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// Catechism question counts used to rotate the devotional anchor.
const (
	heidelbergQuestions = 129
	shorterQuestions    = 107
	largerQuestions     = 196
)

// DailyAnchor picks the catechism question the devotional of day t is built on.
// Days rotate Heidelberg, Shorter, Larger.
func DailyAnchor(t time.Time) string {
	doy := DayOfYear(t)
	switch doy % 3 {
	case 0:
		return fmt.Sprintf("Heidelberg Catechism Question %d", doy%heidelbergQuestions+1)
	case 1:
		return fmt.Sprintf("Westminster Shorter Catechism Question %d", doy%shorterQuestions+1)
	default:
		return fmt.Sprintf("Westminster Larger Catechism Question %d", doy%largerQuestions+1)
	}
}

// DailyTopic picks the topic of the comparative study of day t.
func DailyTopic(cat *domain.Catalog, t time.Time) string {
	if len(cat.StudyTopics) == 0 {
		return ""
	}
	return cat.StudyTopics[DayOfYear(t)%len(cat.StudyTopics)]
}
