package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
	"github.com/MrSnakeDoc/confessio/internal/sources/ccel"
	"github.com/MrSnakeDoc/confessio/internal/store"
)

// Fallback texts of the daily pages.
const (
	MsgDevotionalFallback = "### Grace and Peace\n\nWe are currently unable to retrieve today's devotional due to a connection issue. Please consult Scripture directly: *The Lord is my shepherd; I shall not want.* (Psalm 23:1)"
	MsgStudyFallback      = "### System Error\n\nWe are currently unable to retrieve the daily theological study. Please click the refresh button to try again."
)

// Cache features, also the refId prefixes of saved daily pages.
const (
	FeatureDevotional = "devotional"
	FeatureStudy      = "study"
	FeatureAugustine  = "augustine"
	FeatureSystematic = "systematic"
)

// cacheMarkers flag a cached daily text that recorded a failure.
var cacheMarkers = []string{"System Error", "Unable to"}

// Daily is the content of one of the pages that change every day.
type Daily struct {
	domain.Passage
	// Date is the local day key, ex: "2026-03-02".
	Date string `json:"date"`
	// Display is the long form of Date, ex: "Monday, March 2, 2026".
	Display string `json:"display"`
	// RefID identifies the page in the notebook, ex: "devotional-2026-03-02".
	RefID string `json:"refId"`
	// Topic is the subject label, ex: "Augustine Confessions Book IV Chapter 12".
	Topic  string `json:"topic"`
	Cached bool   `json:"cached"`
}

func (s *Service) newDaily(feature, topic string, day time.Time) Daily {
	date := catalog.DateKey(day)
	return Daily{
		Passage: domain.Passage{Reference: topic},
		Date:    date,
		Display: catalog.LongDate(day),
		RefID:   feature + "-" + date,
		Topic:   topic,
	}
}

// cached returns a usable cached passage. Texts carrying a failure marker
// are ignored.
func (s *Service) cached(ctx context.Context, key string) (domain.Passage, bool) {
	if s.cache == nil {
		return domain.Passage{}, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		return domain.Passage{}, false
	}

	var p domain.Passage
	if err := json.Unmarshal(data, &p); err != nil || p.Text == "" {
		return domain.Passage{}, false
	}
	for _, m := range cacheMarkers {
		if strings.Contains(p.Text, m) {
			return domain.Passage{}, false
		}
	}
	p.Attempts = 0
	return p, true
}

func (s *Service) remember(ctx context.Context, key string, p domain.Passage, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func (s *Service) forget(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("cache delete failed", logger.String("key", key), logger.Error(err))
	}
}

// lookupCache serves d from cache unless refresh is set, in which case the
// cached entry is dropped first.
func (s *Service) lookupCache(ctx context.Context, key string, refresh bool, d *Daily) bool {
	if refresh {
		s.forget(ctx, key)
		return false
	}
	p, ok := s.cached(ctx, key)
	if !ok {
		return false
	}
	p.Reference = d.Reference
	d.Passage = p
	d.Cached = true
	return true
}

// Devotional returns the devotional of the day, anchored on a catechism
// question picked by day of year. A single search-grounded attempt is made.
func (s *Service) Devotional(ctx context.Context, refresh bool) Daily {
	day := s.today()
	anchor := catalog.DailyAnchor(day)
	d := s.newDaily(FeatureDevotional, anchor, day)

	key := store.CacheKey(FeatureDevotional, d.Date)
	if s.lookupCache(ctx, key, refresh, &d) {
		return d
	}

	o := s.generate(ctx, "devotional", generation.Request{
		Model:             s.contentModel,
		Prompt:            prompt.Devotional(d.Display, anchor) + prompt.VerifyText,
		SystemInstruction: prompt.SystemDevotional,
		Temperature:       0.4,
		Search:            true,
	})
	if !o.ok() {
		d.Passage = domain.Passage{Reference: anchor, Text: MsgDevotionalFallback, Attempts: o.attempts, Degraded: true}
		return d
	}

	d.Passage = o.passage(anchor)
	s.remember(ctx, key, d.Passage, s.dailyTTL)
	return d
}

// Study returns the comparative study of the day's topic.
func (s *Service) Study(ctx context.Context, refresh bool) Daily {
	day := s.today()
	topic := ""
	if s.catalog != nil {
		topic = catalog.DailyTopic(s.catalog.Catalog(), day)
	}
	d := s.newDaily(FeatureStudy, topic, day)

	key := store.CacheKey(FeatureStudy, d.Date)
	if s.lookupCache(ctx, key, refresh, &d) {
		return d
	}

	base := prompt.Study(topic)
	o := s.withFallback(ctx, "study",
		generation.Request{
			Model:             s.contentModel,
			Prompt:            base + prompt.VerifyCitations,
			SystemInstruction: prompt.SystemStudy,
			Temperature:       0.1,
			Search:            true,
		},
		generation.Request{
			Model:             s.contentModel,
			Prompt:            base,
			SystemInstruction: prompt.SystemStudy,
			Temperature:       0.3,
		},
	)
	if !o.ok() {
		d.Passage = domain.Passage{Reference: topic, Text: MsgStudyFallback, Attempts: o.attempts, Degraded: true}
		return d
	}

	d.Passage = o.passage(topic)
	s.remember(ctx, key, d.Passage, s.dailyTTL)
	return d
}

// Reading returns the day's chapter of Augustine's Confessions. The chapter
// page is read from CCEL when a reader is set; otherwise, or when that
// fails, the text is generated.
func (s *Service) Reading(ctx context.Context, refresh bool) Daily {
	day := s.today()
	ch := ccel.ChapterForDay(catalog.DayOfYear(day))
	d := s.newDaily(FeatureAugustine, ch.Topic(), day)
	d.Reference = ch.Reference()

	key := store.CacheKey(FeatureAugustine, d.Date)
	if s.lookupCache(ctx, key, refresh, &d) {
		return d
	}

	var lastErr error
	if s.reader != nil {
		text, err := s.reader.Fetch(ctx, ch)
		if err == nil && text != "" {
			d.Passage = domain.Passage{
				Reference: ch.Reference(),
				Text:      text,
				Sources:   []domain.GroundingSource{{URI: ccelURL(s.reader, ch), Title: "Christian Classics Ethereal Library"}},
			}
			s.remember(ctx, key, d.Passage, s.dailyTTL)
			return d
		}
		if err != nil {
			s.log.Warn("ccel fetch failed", logger.String("chapter", ch.Reference()), logger.Error(err))
			lastErr = err
		}
	}

	base := prompt.Augustine(ch.Reference())
	o := s.withFallback(ctx, "augustine",
		generation.Request{
			Model:             s.retrievalModel,
			Prompt:            base + prompt.VerifyText,
			SystemInstruction: prompt.SystemAugustine,
			Temperature:       0.2,
			Search:            true,
		},
		generation.Request{
			Model:             s.retrievalModel,
			Prompt:            base,
			SystemInstruction: prompt.SystemAugustine,
			Temperature:       0.2,
		},
	)
	if !o.ok() {
		if o.err != nil {
			lastErr = o.err
		}
		d.Passage = domain.Passage{Reference: ch.Reference(), Text: readingFailure(lastErr), Attempts: o.attempts, Degraded: true}
		return d
	}

	d.Passage = o.passage(ch.Reference())
	d.Text = ccel.Clean(o.text, ch)
	s.remember(ctx, key, d.Passage, s.dailyTTL)
	return d
}

func ccelURL(r ChapterReader, ch ccel.Chapter) string {
	if c, ok := r.(interface{ URL(ccel.Chapter) string }); ok {
		return c.URL(ch)
	}
	return ""
}

func readingFailure(err error) string {
	reason := "empty response"
	if err != nil {
		reason = err.Error()
	}
	return fmt.Sprintf("### Confessions\n\nWe are currently unable to retrieve today's reading. \n\n**Error:** %s\n\nPlease ensure your API key is correct and you have an active internet connection.", reason)
}
