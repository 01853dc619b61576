package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amprames/fuwari/internal/browse"
	"github.com/amprames/fuwari/internal/events"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *browse.Service, broker *events.Broker, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, broker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Filtered view and single posts.
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/*", h.GetPost)

	// Search criteria.
	r.Get("/search", h.GetSearch)
	r.Patch("/search", h.UpdateSearch)
	r.Delete("/search", h.ResetSearch)

	// Aggregates.
	r.Get("/filters", h.Filters)
	r.Get("/tags", h.Tags)
	r.Get("/categories", h.Categories)

	// Theme preference.
	r.Get("/theme", h.GetTheme)
	r.Put("/theme", h.SetTheme)
	r.Post("/theme/toggle", h.ToggleTheme)

	// Ephemeral UI state.
	r.Get("/ui", h.GetUI)
	r.Post("/ui/sidebar/toggle", h.ToggleSidebar)
	r.Post("/ui/search/toggle", h.ToggleSearchPanel)
	r.Put("/ui/loading", h.SetLoading)

	// Navigation history.
	r.Get("/navigation", h.GetNavigation)
	r.Post("/navigation", h.Visit)

	// Collection reload.
	r.Post("/reload", h.Reload)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
