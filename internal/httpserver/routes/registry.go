package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg    Registrar
	mws    []Middleware
	stream bool
}

var registry []entry

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterStream registers routes that stream their response. They are left
// out of the request timeout.
func RegisterStream(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws, stream: true})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	r.Group(func(g chi.Router) {
		if d.RequestTimeout > 0 {
			g.Use(middleware.Timeout(d.RequestTimeout))
		}
		for _, e := range registry {
			if !e.stream {
				apply(g, d, e)
			}
		}
	})
	for _, e := range registry {
		if e.stream {
			apply(r, d, e)
		}
	}
}

func apply(r chi.Router, d deps.Deps, e entry) {
	if len(e.mws) == 0 {
		e.reg(r, d)
		return
	}
	e.reg(r.With(e.mws...), d) // apply per-route middlewares
}

// generationLimit is the shared rate limit of the generation routes.
func generationLimit(d deps.Deps) Middleware {
	if d.GenerationLimit == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return d.GenerationLimit
}
