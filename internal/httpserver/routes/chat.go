package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/handlers"
)

func init() {
	Register(registerChat)
	RegisterStream(registerChatStream)
}

func registerChat(r chi.Router, d deps.Deps) {
	g := r.With(generationLimit(d))
	g.Post("/api/chat/sessions", handlers.OpenSession(d))
	g.Post("/api/hymns/lookup", handlers.HymnLookup(d))
	g.Post("/api/bible/read", handlers.BibleRead(d))

	r.Get("/api/chat/sessions/{id}", handlers.GetSession(d))
	r.Delete("/api/chat/sessions/{id}", handlers.CloseSession(d))
}

func registerChatStream(r chi.Router, d deps.Deps) {
	g := r.With(generationLimit(d))
	g.Post("/api/chat/sessions/{id}/messages", handlers.SendMessage(d))
	g.Post("/api/chat/sessions/{id}/toc", handlers.NavigateTOC(d))
}
