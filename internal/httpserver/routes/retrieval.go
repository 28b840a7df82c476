package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/handlers"
)

func init() {
	Register(registerRetrieval)
	Register(registerTools)
}

// Every route here may call the generation backend.
func registerRetrieval(r chi.Router, d deps.Deps) {
	g := r.With(generationLimit(d))

	g.Post("/api/retrieve/verbatim", handlers.Verbatim(d))
	g.Post("/api/search", handlers.StructuredSearch(d))
	g.Post("/api/search/text", handlers.SearchResultText(d))
	g.Post("/api/crossrefs", handlers.CrossRefs(d))
	g.Post("/api/verse-citations", handlers.VerseCitations(d))
	g.Post("/api/verse-citations/context", handlers.VerseCitationContext(d))
	g.Post("/api/scripture/interlinear", handlers.Interlinear(d))
	g.Post("/api/scripture/latin", handlers.Latin(d))

	g.Get("/api/devotional", handlers.Devotional(d))
	g.Get("/api/study", handlers.Study(d))
	g.Get("/api/reading", handlers.Reading(d))

	g.Post("/api/systematics", handlers.Systematic(d))
	g.Post("/api/concepts", handlers.Concept(d))
	g.Post("/api/compare", handlers.Compare(d))
	g.Post("/api/library/{id}/offline", handlers.Offline(d))
}

func registerTools(r chi.Router, d deps.Deps) {
	r.Get("/api/links", handlers.Links(d))
	r.Post("/api/tokenize", handlers.Tokenize(d))
	r.Get("/api/share", handlers.Share(d))
}
