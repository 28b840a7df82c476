// Package search keeps a full-text index over the catalog.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/logger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Index is an in-memory bleve index rebuilt whenever the catalog reloads.
// All methods are safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
	log   logger.Logger
}

func NewIndex(log logger.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx, log: log}, nil
}

// Rebuild replaces the indexed documents with those of cat.
// The previous index keeps serving until the new one is complete.
func (s *Index) Rebuild(cat *domain.Catalog) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	docs := Documents(cat)
	batch := fresh.NewBatch()
	for _, d := range docs {
		if err := batch.Index(d.ID, d.toMap()); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("batch index %s: %w", d.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("commit batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	s.log.Debug("search index rebuilt", logger.Int("documents", len(docs)))
	return nil
}

// DocumentCount returns the number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Hit is one search result.
type Hit struct {
	Type     DocType `json:"type"`
	RefID    string  `json:"refId"`
	Name     string  `json:"name"`
	Subtitle string  `json:"subtitle,omitempty"`
	Author   string  `json:"author,omitempty"`
	Score    float64 `json:"score"`
}

// Params configures a search.
type Params struct {
	Query string
	Types []DocType // empty means all
	Limit int
}

// Search runs q against names with a boost, then descriptions, authors and
// tags, with fuzzy and prefix matching on names. An empty query lists everything.
func (s *Index) Search(ctx context.Context, p Params) ([]Hit, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(p), limit, 0, false)
	req.Fields = []string{"type", "ref_id", "name", "subtitle", "author"}
	req.SortBy([]string{"-_score", "_id"})

	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Score: h.Score}
		if v, ok := h.Fields["type"].(string); ok {
			hit.Type = DocType(v)
		}
		if v, ok := h.Fields["ref_id"].(string); ok {
			hit.RefID = v
		}
		if v, ok := h.Fields["name"].(string); ok {
			hit.Name = v
		}
		if v, ok := h.Fields["subtitle"].(string); ok {
			hit.Subtitle = v
		}
		if v, ok := h.Fields["author"].(string); ok {
			hit.Author = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func buildQuery(p Params) query.Query {
	var queries []query.Query

	q := strings.TrimSpace(p.Query)
	if q != "" {
		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		subtitleMatch := bleve.NewMatchQuery(q)
		subtitleMatch.SetField("subtitle")
		subtitleMatch.SetBoost(1.5)

		authorMatch := bleve.NewMatchQuery(q)
		authorMatch.SetField("author")
		authorMatch.SetBoost(1.5)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")

		tagMatch := bleve.NewMatchQuery(q)
		tagMatch.SetField("tags")

		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("name")
		fuzzy.SetBoost(0.8)

		text := []query.Query{nameMatch, subtitleMatch, authorMatch, descMatch, tagMatch, fuzzy}

		if len(q) >= 2 {
			prefix := bleve.NewPrefixQuery(strings.ToLower(q))
			prefix.SetField("name")
			prefix.SetBoost(0.5)
			text = append(text, prefix)
		}
		queries = append(queries, bleve.NewDisjunctionQuery(text...))
	}

	if len(p.Types) > 0 {
		typeQueries := make([]query.Query, len(p.Types))
		for i, t := range p.Types {
			tq := bleve.NewTermQuery(string(t))
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// ParseTypes reads a comma separated type filter, dropping unknown names.
func ParseTypes(s string) []DocType {
	var out []DocType
	for _, part := range strings.Split(s, ",") {
		t := DocType(strings.TrimSpace(part))
		for _, known := range DocTypes() {
			if t == known {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
