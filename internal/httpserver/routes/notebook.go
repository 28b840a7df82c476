package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/handlers"
)

func init() { Register(registerNotebook) }

func registerNotebook(r chi.Router, d deps.Deps) {
	r.Route("/api/notebook", func(r chi.Router) {
		r.Get("/", handlers.NotebookList(d))
		r.Post("/", handlers.NotebookSave(d))
		r.Get("/saved", handlers.NotebookSaved(d))
		r.Post("/toggle", handlers.NotebookToggle(d))
		r.Get("/{id}", handlers.NotebookGet(d))
		r.Put("/{id}/note", handlers.NotebookNote(d))
		r.Delete("/{id}", handlers.NotebookDelete(d))
	})

	r.Get("/api/preferences", handlers.PreferencesGet(d))
	r.Put("/api/preferences", handlers.PreferencesUpdate(d))
	r.Delete("/api/preferences", handlers.PreferencesReset(d))
}
