package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/credenda/internal/reader"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *reader.Service, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(NoCache)

	// Generic render of any location.
	r.Get("/view", h.View)

	// Convenience routes.
	r.Get("/index", h.Index)
	r.Get("/articles/{number}", h.Article)
	r.Get("/daily/{service}", h.Daily)

	// Search.
	r.Get("/search", h.Search)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
