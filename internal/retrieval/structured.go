package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
)

var errNotJSON = errors.New("response is not a JSON value")

// stripFences removes markdown code fences the model wraps JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseSearchResponse decodes the structured search payload. A bare array
// is taken as the result list. Missing slices come back empty, never nil.
func ParseSearchResponse(text string) (domain.SearchResponse, error) {
	out := domain.SearchResponse{Results: []domain.SearchResult{}, RelatedTerms: []string{}}

	clean := stripFences(text)
	switch {
	case strings.HasPrefix(clean, "["):
		var results []domain.SearchResult
		if err := json.Unmarshal([]byte(clean), &results); err != nil {
			return out, err
		}
		if results != nil {
			out.Results = results
		}
	case strings.HasPrefix(clean, "{"):
		var resp domain.SearchResponse
		if err := json.Unmarshal([]byte(clean), &resp); err != nil {
			return out, err
		}
		if resp.Results != nil {
			out.Results = resp.Results
		}
		if resp.RelatedTerms != nil {
			out.RelatedTerms = resp.RelatedTerms
		}
	default:
		return out, errNotJSON
	}
	return out, nil
}

// parseArray decodes a JSON array answer into dst.
func parseArray(text string, dst any) error {
	clean := stripFences(text)
	if !strings.HasPrefix(clean, "[") {
		return errNotJSON
	}
	return json.Unmarshal([]byte(clean), dst)
}

// SearchStructured looks a doctrinal term up across the standards.
// Any failure yields an empty response, never an error.
func (s *Service) SearchStructured(ctx context.Context, term string) domain.SearchResponse {
	o := s.generate(ctx, "search", generation.Request{
		Model:             s.contentModel,
		Prompt:            prompt.StructuredSearch(term),
		SystemInstruction: prompt.SystemInitial,
		Temperature:       0.1,
		JSON:              true,
	})

	if !o.ok() {
		return domain.SearchResponse{Results: []domain.SearchResult{}, RelatedTerms: []string{}}
	}

	resp, err := ParseSearchResponse(o.text)
	if err != nil {
		s.log.Warn("search response unreadable", logger.String("term", term), logger.Error(err))
	}
	return resp
}

// RelatedStandards suggests citations of other standards on the topic of a
// confession reference. quoted is the text already shown for it; when that
// text is a verification failure no suggestion is requested.
func (s *Service) RelatedStandards(ctx context.Context, reference, quoted string) []string {
	out := []string{}
	if strings.Contains(quoted, "Unable to") {
		return out
	}

	o := s.generate(ctx, "related_standards", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.RelatedStandards(reference),
		Temperature: 0.1,
		JSON:        true,
	})
	if !o.ok() {
		return out
	}

	var refs []string
	if err := parseArray(o.text, &refs); err != nil {
		s.log.Warn("related standards unreadable", logger.String("reference", reference), logger.Error(err))
		return out
	}
	if refs != nil {
		out = refs
	}
	return out
}

// VerseCitations lists the standards that cite or rest on a Bible verse.
func (s *Service) VerseCitations(ctx context.Context, verse string) []domain.CrossReference {
	out := []domain.CrossReference{}

	o := s.generate(ctx, "verse_citations", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.VerseCitations(verse),
		Temperature: 0.1,
		JSON:        true,
		Search:      true,
	})
	if !o.ok() {
		return out
	}

	var refs []domain.CrossReference
	if err := parseArray(o.text, &refs); err != nil {
		s.log.Warn("verse citations unreadable", logger.String("verse", verse), logger.Error(err))
		return out
	}
	if refs != nil {
		out = refs
	}
	return out
}
