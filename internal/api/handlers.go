package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amprames/fuwari/internal/apperr"
	"github.com/amprames/fuwari/internal/browse"
	"github.com/amprames/fuwari/internal/events"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *browse.Service
	broker *events.Broker
}

// NewHandler creates a new Handler. broker may be nil when no event stream
// is mounted.
func NewHandler(svc *browse.Service, broker *events.Broker) *Handler {
	return &Handler{svc: svc, broker: broker}
}

func (h *Handler) publish(eventType string, data any) {
	if h.broker != nil {
		h.broker.Publish(events.Event{Type: eventType, Data: data})
	}
}

// postSlug extracts the slug from the URL (everything after /posts/).
// Encoded slashes from generated clients are supported.
func postSlug(r *http.Request) string {
	raw := strings.Trim(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListPosts handles GET /posts: the filtered, sorted view for the current
// criteria as lightweight list items.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	items := h.svc.ListPosts()
	writeJSON(w, http.StatusOK, PostListResponse{Posts: items, Total: len(items)})
}

// GetPost handles GET /posts/*: the full post with navigation pointers,
// looked up in the unfiltered collection.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := postSlug(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	post, err := h.svc.GetPost(slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, PostDetail{Post: *post, URL: h.svc.URLs().PostURL(post.Slug)})
}

// GetSearch handles GET /search: the current criteria snapshot.
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Search())
}

// UpdateSearch handles PATCH /search: a partial criteria update. Unknown
// sort fields are rejected with 400 rather than silently defaulted.
func (h *Handler) UpdateSearch(w http.ResponseWriter, r *http.Request) {
	var req UpdateSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateSearch(req); err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("update search failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Search())
}

// ResetSearch handles DELETE /search: restore default criteria.
func (h *Handler) ResetSearch(w http.ResponseWriter, r *http.Request) {
	h.svc.ResetSearch()
	writeJSON(w, http.StatusOK, h.svc.Search())
}

// Filters handles GET /filters: the deduplicated tag/category aggregates of
// the stored collection.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FiltersResponse{
		Tags:       h.svc.AllTags(),
		Categories: h.svc.AllCategories(),
	})
}

// Tags handles GET /tags: the count-based tag list.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.TagList(r.Context())
	if err != nil {
		slog.Error("tag list failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

// Categories handles GET /categories: the count-based category list with
// the localized uncategorized sentinel.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.CategoryList(r.Context())
	if err != nil {
		slog.Error("category list failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// GetTheme handles GET /theme.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: h.svc.Theme()})
}

// SetTheme handles PUT /theme.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SetTheme(req.Theme); err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		} else {
			slog.Error("set theme failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publish(events.TypeThemeChanged, map[string]string{"theme": string(req.Theme)})
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: h.svc.Theme()})
}

// ToggleTheme handles POST /theme/toggle: light → dark → auto → light.
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.svc.ToggleTheme()
	if err != nil {
		slog.Error("toggle theme failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.publish(events.TypeThemeChanged, map[string]string{"theme": string(theme)})
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

// GetUI handles GET /ui.
func (h *Handler) GetUI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.UIState())
}

// ToggleSidebar handles POST /ui/sidebar/toggle.
func (h *Handler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ToggleSidebar())
}

// ToggleSearchPanel handles POST /ui/search/toggle.
func (h *Handler) ToggleSearchPanel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ToggleSearch())
}

// SetLoading handles PUT /ui/loading.
func (h *Handler) SetLoading(w http.ResponseWriter, r *http.Request) {
	var req SetLoadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SetLoading(req.IsLoading))
}

// GetNavigation handles GET /navigation.
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Navigation())
}

// Visit handles POST /navigation: push the current page into previous and
// record the new current page.
func (h *Handler) Visit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Visit(req.Path))
}

// Reload handles POST /reload: re-ingest the collection. A failed reload
// leaves the previous collection in place.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Reload(r.Context())
	if err != nil {
		slog.Error("reload failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("reload failed"))
		return
	}
	h.publish(events.TypeContentReloaded, map[string]int{"posts": n})
	writeJSON(w, http.StatusOK, ReloadResponse{Posts: n})
}
