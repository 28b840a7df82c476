package retrieval

import (
	"context"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
)

// Fallback texts shown in place of a quote.
const (
	MsgNoText         = "Could not retrieve text."
	MsgContentError   = "Error retrieving content."
	MsgTextError      = "Error retrieving text."
	MsgNoData         = "No data."
	defaultBibleLabel = "ESV / NASB 95 / Geneva"
)

// defaultBible resolves the user's preferred translation, nil when unknown.
func (s *Service) defaultBible(ctx context.Context) *domain.BibleVersion {
	if s.prefs == nil || s.catalog == nil {
		return nil
	}
	if b, ok := s.catalog.Bible(s.prefs.Get(ctx).DefaultBibleID); ok {
		return &b
	}
	return nil
}

// degrade replaces a failed outcome with the empty or error message.
func degrade(p domain.Passage, o outcome, empty, failed string) domain.Passage {
	if o.ok() {
		return p
	}
	p.Degraded = true
	p.Text = empty
	if o.err != nil {
		p.Text = failed
	}
	return p
}

// Verbatim quotes a scripture or confession reference. active is the
// translation in focus, if any. The citation is sent as written.
func (s *Service) Verbatim(ctx context.Context, reference string, kind domain.RefKind, active *domain.BibleVersion) domain.Passage {
	var fallback *domain.BibleVersion
	if active == nil && kind == domain.RefScripture {
		fallback = s.defaultBible(ctx)
	}

	o := s.generate(ctx, "verbatim", generation.Request{
		Model:       s.retrievalModel,
		Prompt:      prompt.Verbatim(reference, kind, active, fallback),
		Temperature: 0.1,
		Search:      true,
	})

	p := o.passage(reference)
	if kind == domain.RefScripture {
		switch {
		case active != nil:
			p.Version = active.Title
		case fallback != nil:
			p.Version = fallback.Title
		default:
			p.Version = defaultBibleLabel
		}
	}
	return degrade(p, o, MsgNoText, MsgContentError)
}

// SearchResultText quotes the section behind a structured search hit.
func (s *Service) SearchResultText(ctx context.Context, r domain.SearchResult) domain.Passage {
	o := s.generate(ctx, "search_text", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.SearchResultVerbatim(r.Document, r.Reference),
		Temperature: 0.1,
		Search:      true,
	})
	return degrade(o.passage(r.Document+" "+r.Reference), o, MsgNoText, MsgTextError)
}

// CrossRefContext quotes a standard returned by VerseCitations.
func (s *Service) CrossRefContext(ctx context.Context, ref domain.CrossReference) domain.Passage {
	o := s.generate(ctx, "crossref_context", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.CrossRefContext(ref.Document, ref.Reference),
		Temperature: 0.1,
		Search:      true,
	})
	return degrade(o.passage(ref.Document+" "+ref.Reference), o, MsgNoText, MsgContentError)
}

// Interlinear returns the word by word table of a Bible reference,
// Hebrew for the Old Testament and Greek otherwise.
func (s *Service) Interlinear(ctx context.Context, reference string) domain.Passage {
	testament := domain.NewTestament
	if s.catalog != nil {
		testament = catalog.Testament(s.catalog.Catalog(), reference)
	}
	o := s.generate(ctx, "interlinear", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.Interlinear(reference, testament),
		Temperature: 0.1,
	})
	return degrade(o.passage(reference), o, MsgNoData, MsgNoData)
}

// Latin returns the Vulgate text of a Bible reference.
func (s *Service) Latin(ctx context.Context, reference string) domain.Passage {
	o := s.generate(ctx, "latin", generation.Request{
		Model:       s.contentModel,
		Prompt:      prompt.Latin(reference),
		Temperature: 0.1,
	})
	p := o.passage(reference)
	p.Version = "Clementine Vulgate"
	return degrade(p, o, MsgNoData, MsgNoData)
}
