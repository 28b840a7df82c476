// Package retrieval turns prompts into reference text.
//
// Every operation degrades instead of failing: a backend error or an empty
// answer becomes a fixed fallback message or an empty result set, and the
// fault is logged. Only lookups of unknown catalog ids return errors.
package retrieval

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/index"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/notebook"
	"github.com/MrSnakeDoc/confessio/internal/prefs"
	"github.com/MrSnakeDoc/confessio/internal/sources/ccel"
	"github.com/MrSnakeDoc/confessio/internal/store"
)

// ChapterReader fetches one chapter of Augustine's Confessions.
type ChapterReader interface {
	Fetch(ctx context.Context, c ccel.Chapter) (string, error)
}

type Options struct {
	Backend  generation.Backend
	Cache    store.KV
	Catalog  *index.MemoryIndex
	Notebook *notebook.Store
	Prefs    *prefs.Service
	// Reader is optional; without it the daily reading is always generated.
	Reader ChapterReader

	// RetrievalModel serves verbatim quotes and the daily reading,
	// ContentModel everything else.
	RetrievalModel string
	ContentModel   string
	// DailyTTL bounds how long daily content stays cached.
	DailyTTL time.Duration
	// Location decides where a day starts.
	Location *time.Location

	Logger logger.Logger
}

type Service struct {
	gen      generation.Backend
	cache    store.KV
	catalog  *index.MemoryIndex
	notebook *notebook.Store
	prefs    *prefs.Service
	reader   ChapterReader

	retrievalModel string
	contentModel   string
	dailyTTL       time.Duration
	loc            *time.Location

	log logger.Logger
	now func() time.Time
}

func New(opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		gen:            opts.Backend,
		cache:          opts.Cache,
		catalog:        opts.Catalog,
		notebook:       opts.Notebook,
		prefs:          opts.Prefs,
		reader:         opts.Reader,
		retrievalModel: opts.RetrievalModel,
		contentModel:   opts.ContentModel,
		dailyTTL:       opts.DailyTTL,
		loc:            loc,
		log:            log.Component("retrieval"),
		now:            time.Now,
	}
}

// today is the current time in the configured zone.
func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// outcome is the result of one or two generation attempts.
type outcome struct {
	text     string
	sources  []domain.GroundingSource
	attempts int
	// err is the error of the last attempt, nil when it merely came back empty.
	err error
}

func (o outcome) ok() bool { return o.text != "" }

func (o outcome) passage(reference string) domain.Passage {
	return domain.Passage{Reference: reference, Text: o.text, Sources: o.sources, Attempts: o.attempts}
}

// generate makes a single attempt.
func (s *Service) generate(ctx context.Context, op string, req generation.Request) outcome {
	if req.MaxOutputTokens == 0 {
		req.MaxOutputTokens = generation.DefaultMaxOutputTokens
	}
	resp, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.Warn("generation failed",
			logger.String("op", op),
			logger.String("model", req.Model),
			logger.Bool("search", req.Search),
			logger.Error(err),
		)
		return outcome{attempts: 1, err: err}
	}
	if resp.Text == "" {
		s.log.Warn("generation returned no text", logger.String("op", op), logger.Bool("search", req.Search))
	}
	return outcome{text: resp.Text, sources: resp.Sources, attempts: 1}
}

// withFallback tries the search-grounded request, then the plain one once
// when the first failed or came back empty. There is no further retry.
func (s *Service) withFallback(ctx context.Context, op string, enhanced, plain generation.Request) outcome {
	first := s.generate(ctx, op, enhanced)
	if first.ok() {
		return first
	}
	if ctx.Err() != nil {
		return first
	}

	s.log.Info("retrying without search", logger.String("op", op))
	second := s.generate(ctx, op, plain)
	second.attempts += first.attempts
	return second
}
