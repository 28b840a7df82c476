package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/confessions", handlers.Confessions(d))
		r.Get("/confessions/{id}", handlers.Confession(d))
		r.Get("/confessions/{id}/navigation", handlers.Navigation(d))
		r.Get("/bibles", handlers.Bibles(d))
		r.Get("/books", handlers.Books(d))
		r.Get("/hymns", handlers.Hymns(d))
		r.Get("/theologians", handlers.Theologians(d))
		r.Get("/timeline", handlers.Timeline(d))
		r.Get("/connections", handlers.Connections(d))
		r.Get("/systematics", handlers.Systematics(d))
		r.Get("/topics", handlers.Topics(d))
		r.Get("/search", handlers.CatalogSearch(d))
	})
}
