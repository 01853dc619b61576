package api

import (
	"github.com/amprames/fuwari/internal/browse"
	"github.com/amprames/fuwari/internal/models"
	"github.com/amprames/fuwari/internal/store"
)

// PostListItem is a lightweight item in a list response (aliased from the
// domain layer).
type PostListItem = browse.PostListItem

// PostDetail is the full post response: the domain post plus its URL.
type PostDetail struct {
	models.Post
	URL string `json:"url"`
}

// PostListResponse wraps a filtered post listing.
type PostListResponse struct {
	Posts []PostListItem `json:"posts"`
	Total int            `json:"total"`
}

// FiltersResponse carries the store-backed aggregates used to render the
// filter panel.
type FiltersResponse struct {
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

// UpdateSearchRequest is the request body for a partial criteria update.
type UpdateSearchRequest = store.CriteriaPatch

// ThemeResponse wraps the theme preference.
type ThemeResponse struct {
	Theme store.Theme `json:"theme"`
}

// SetThemeRequest is the request body for setting the theme directly.
type SetThemeRequest struct {
	Theme store.Theme `json:"theme"`
}

// SetLoadingRequest is the request body for the loading flag.
type SetLoadingRequest struct {
	IsLoading bool `json:"is_loading"`
}

// VisitRequest records a page navigation.
type VisitRequest struct {
	Path string `json:"path"`
}

// ReloadResponse reports how many posts the reload published.
type ReloadResponse struct {
	Posts int `json:"posts"`
}
