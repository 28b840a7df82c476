package retrieval

import (
	"context"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
	"github.com/MrSnakeDoc/confessio/internal/store"
)

const (
	MsgSystematicEmpty = "### Content Unavailable\n\nWe apologize, but we could not generate this content at the moment. Please check your internet connection or try selecting the topic again."
	MsgSystematicError = "### System Error\n\nAn unexpected error occurred while communicating with the knowledge base. Please try again later."
	MsgConceptEmpty    = "Unable to generate details. Please try again."
	MsgConceptError    = "Error retrieving details. Please try again."
	MsgCompareEmpty    = "Comparison failed. Please try again."
	MsgCompareError    = "An error occurred during the comparison."

	offlineNote = "Downloaded for offline study."
	offlineTag  = "Offline"
)

// Systematic returns the summary page of a systematic theology topic.
// Successful pages are cached without expiry.
func (s *Service) Systematic(ctx context.Context, topic string) domain.Passage {
	key := store.CacheKey(FeatureSystematic, topic)
	if p, ok := s.cached(ctx, key); ok {
		p.Reference = topic
		return p
	}

	base := prompt.Systematic(topic)
	o := s.withFallback(ctx, "systematic",
		generation.Request{Model: s.contentModel, Prompt: base + prompt.VerifyCitations, Temperature: 0.3, Search: true},
		generation.Request{Model: s.contentModel, Prompt: base, Temperature: 0.4},
	)

	p := degrade(o.passage(topic), o, MsgSystematicEmpty, MsgSystematicError)
	if !p.Degraded {
		s.remember(ctx, key, p, 0)
	}
	return p
}

// FindDoctrine looks a doctrine up by title among both ends of every connection.
func FindDoctrine(cat *domain.Catalog, title string) (domain.Doctrine, bool) {
	for _, c := range cat.Connections {
		if strings.EqualFold(c.Source.Title, title) {
			return c.Source, true
		}
		if strings.EqualFold(c.Target.Title, title) {
			return c.Target, true
		}
	}
	return domain.Doctrine{}, false
}

// Concept analyses one doctrine of the connections graph.
func (s *Service) Concept(ctx context.Context, title string) (domain.Passage, error) {
	d, ok := FindDoctrine(s.catalog.Catalog(), title)
	if !ok {
		return domain.Passage{}, apperr.NotFoundf("doctrine %q not found", title)
	}

	text := prompt.Concept(d)
	o := s.withFallback(ctx, "concept",
		generation.Request{Model: s.contentModel, Prompt: text, Temperature: 0.2, Search: true},
		generation.Request{Model: s.contentModel, Prompt: text, Temperature: 0.3},
	)
	return degrade(o.passage(d.Title), o, MsgConceptEmpty, MsgConceptError), nil
}

// Compare sets two standards side by side on a topic.
func (s *Service) Compare(ctx context.Context, docA, docB, topic string) (domain.Passage, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Passage{}, apperr.Validation("topic is required")
	}
	a, ok := s.catalog.Confession(docA)
	if !ok {
		return domain.Passage{}, apperr.NotFoundf("confession %q not found", docA)
	}
	b, ok := s.catalog.Confession(docB)
	if !ok {
		return domain.Passage{}, apperr.NotFoundf("confession %q not found", docB)
	}

	base := prompt.Compare(a, b, topic)
	o := s.withFallback(ctx, "compare",
		generation.Request{Model: s.contentModel, Prompt: base + prompt.VerifyCitations, Temperature: 0.2, Search: true},
		generation.Request{Model: s.contentModel, Prompt: base, Temperature: 0.3},
	)
	return degrade(o.passage(a.ShortTitle+" / "+b.ShortTitle+": "+topic), o, MsgCompareEmpty, MsgCompareError), nil
}

// FullDocument downloads a whole document and keeps it in the notebook for
// offline reading. A document already kept offline is returned as is; a plain
// bookmark of it is replaced by the offline copy.
func (s *Service) FullDocument(ctx context.Context, confessionID string) (domain.SavedItem, error) {
	c, ok := s.catalog.Confession(confessionID)
	if !ok {
		return domain.SavedItem{}, apperr.NotFoundf("confession %q not found", confessionID)
	}

	existing, saved := s.notebook.Find(ctx, domain.ItemConfession, c.ID)
	if saved && existing.IsOffline {
		return existing, nil
	}

	o := s.generate(ctx, "offline", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.FullDocument(c),
		Temperature: 0.1,
		Search:      true,
	})
	if o.err != nil {
		return domain.SavedItem{}, apperr.Upstream("failed to download document for offline use", o.err)
	}
	if !o.ok() {
		return domain.SavedItem{}, apperr.Upstream("failed to download document for offline use", nil)
	}

	if saved {
		if err := s.notebook.Remove(ctx, existing.ID); err != nil {
			return domain.SavedItem{}, err
		}
	}

	item, err := s.notebook.Save(ctx, domain.Candidate{
		Type:      domain.ItemConfession,
		RefID:     c.ID,
		Title:     c.Title,
		Subtitle:  c.Author,
		Tags:      append(slices.Clone(c.Tags), offlineTag),
		UserNotes: offlineNote,
		Content:   o.text,
		IsOffline: true,
	})
	if err != nil {
		return domain.SavedItem{}, err
	}
	s.log.Info("document saved offline", logger.String("confession", c.ID), logger.Int("bytes", len(o.text)))
	return item, nil
}

// ReadRequest selects Bible text to open in chat: a chapter, or a reading
// list of passage groups.
type ReadRequest struct {
	VersionID string     `json:"versionId"`
	Book      string     `json:"book"`
	Chapter   int        `json:"chapter"`
	Groups    [][]string `json:"groups"`
}

// BiblePrompt builds the chat request for r and returns the translation it is read in.
// An empty VersionID means the user's default translation.
func (s *Service) BiblePrompt(ctx context.Context, r ReadRequest) (string, domain.BibleVersion, error) {
	id := r.VersionID
	if id == "" && s.prefs != nil {
		id = s.prefs.Get(ctx).DefaultBibleID
	}
	v, ok := s.catalog.Bible(id)
	if !ok {
		return "", domain.BibleVersion{}, apperr.NotFoundf("bible version %q not found", id)
	}

	if len(r.Groups) > 0 {
		for _, g := range r.Groups {
			if len(g) == 0 {
				return "", v, apperr.Validation("reading groups must not be empty")
			}
		}
		return prompt.ReadingList(v, r.Groups), v, nil
	}

	book, ok := catalog.FindBook(s.catalog.Catalog(), r.Book)
	if !ok {
		return "", v, apperr.NotFoundf("book %q not found", r.Book)
	}
	if r.Chapter < 1 || r.Chapter > book.Chapters {
		return "", v, apperr.Validationf("%s has chapters 1 to %d", book.Name, book.Chapters)
	}
	return prompt.Chapter(book.Name, r.Chapter, v), v, nil
}

// HymnPrompt builds the chat request looking a hymn up in the extended library.
func HymnPrompt(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", apperr.Validation("query is required")
	}
	return prompt.Hymn(query), nil
}
