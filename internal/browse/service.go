// Package browse coordinates the stores, the derivation engine, and the
// loader behind the browsing operations exposed over HTTP and MCP.
package browse

import (
	"context"
	"time"

	"github.com/amprames/fuwari/internal/apperr"
	"github.com/amprames/fuwari/internal/derive"
	"github.com/amprames/fuwari/internal/loader"
	"github.com/amprames/fuwari/internal/models"
	"github.com/amprames/fuwari/internal/store"
	"github.com/amprames/fuwari/internal/urlkit"
)

// PostListItem is a lightweight post representation for listing pages: the
// metadata without navigation pointers or draft flag.
type PostListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category,omitempty"`
	URL         string    `json:"url"`
}

// Service ties the session state together.
type Service struct {
	posts  *store.PostStore
	search *store.SearchStore
	theme  *store.ThemeStore
	ui     *store.UIStore
	nav    *store.NavStore
	eng    *derive.Engine
	view   *derive.View
	ldr    *loader.Loader
	urls   urlkit.Builder
	vis    loader.Visibility
}

// NewService creates a browse service over the given stores. vis is the
// draft visibility the session operates under.
func NewService(posts *store.PostStore, search *store.SearchStore, theme *store.ThemeStore, ui *store.UIStore, nav *store.NavStore, eng *derive.Engine, ldr *loader.Loader, urls urlkit.Builder, vis loader.Visibility) *Service {
	return &Service{
		posts:  posts,
		search: search,
		theme:  theme,
		ui:     ui,
		nav:    nav,
		eng:    eng,
		view:   derive.NewView(eng, posts, search),
		ldr:    ldr,
		urls:   urls,
		vis:    vis,
	}
}

// FilteredPosts returns the full filtered+sorted view for the current
// criteria.
func (s *Service) FilteredPosts() []models.Post {
	return s.view.Posts()
}

// ListPosts returns the filtered view as lightweight list items.
func (s *Service) ListPosts() []PostListItem {
	posts := s.view.Posts()
	items := make([]PostListItem, len(posts))
	for i, p := range posts {
		items[i] = PostListItem{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			PublishedAt: p.PublishedAt,
			Tags:        p.Tags,
			Category:    p.Category,
			URL:         s.urls.PostURL(p.Slug),
		}
	}
	return items
}

// GetPost returns the post with the given slug from the full collection,
// navigation pointers included, regardless of the active filter.
func (s *Service) GetPost(slug string) (*models.Post, error) {
	for _, p := range s.posts.Get() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// QueryPosts evaluates an ad-hoc query over the collection without touching
// the session criteria.
func (s *Service) QueryPosts(query string) []models.Post {
	c := store.DefaultCriteria()
	c.Query = query
	return s.eng.FilteredPosts(s.posts.Get(), c)
}

// Search returns the current criteria snapshot.
func (s *Service) Search() store.Criteria {
	return s.search.Get()
}

// UpdateSearch merges a partial criteria update.
func (s *Service) UpdateSearch(p store.CriteriaPatch) error {
	return s.search.Update(p)
}

// ResetSearch restores the default criteria.
func (s *Service) ResetSearch() {
	s.search.Reset()
}

// AllTags returns the deduplicated sorted tag union of the stored
// collection.
func (s *Service) AllTags() []string {
	return s.view.Tags()
}

// AllCategories returns the distinct non-empty categories of the stored
// collection.
func (s *Service) AllCategories() []string {
	return s.view.Categories()
}

// TagList returns the count-based tag list from an independent fetch.
func (s *Service) TagList(ctx context.Context) ([]models.Tag, error) {
	return s.ldr.TagList(ctx, s.vis)
}

// CategoryList returns the count-based category list from an independent
// fetch, with the localized uncategorized sentinel.
func (s *Service) CategoryList(ctx context.Context) ([]models.Category, error) {
	return s.ldr.CategoryList(ctx, s.vis)
}

// Reload re-ingests the collection. On failure the store keeps its previous
// contents.
func (s *Service) Reload(ctx context.Context) (int, error) {
	return s.ldr.Load(ctx, s.vis)
}

// Theme returns the current theme preference.
func (s *Service) Theme() store.Theme {
	return s.theme.Get()
}

// SetTheme sets the theme with write-through persistence.
func (s *Service) SetTheme(t store.Theme) error {
	return s.theme.Set(t)
}

// ToggleTheme cycles the theme and returns the new value.
func (s *Service) ToggleTheme() (store.Theme, error) {
	return s.theme.Toggle()
}

// UIState returns the ephemeral UI flags.
func (s *Service) UIState() store.UIState {
	return s.ui.Get()
}

// ToggleSidebar flips the sidebar flag.
func (s *Service) ToggleSidebar() store.UIState {
	return s.ui.ToggleSidebar()
}

// ToggleSearch flips the search panel flag.
func (s *Service) ToggleSearch() store.UIState {
	return s.ui.ToggleSearch()
}

// SetLoading sets the loading flag.
func (s *Service) SetLoading(loading bool) store.UIState {
	return s.ui.SetLoading(loading)
}

// Navigation returns the one-level page history.
func (s *Service) Navigation() store.Navigation {
	return s.nav.Get()
}

// Visit records a page visit, pushing the old current page into previous.
func (s *Service) Visit(path string) store.Navigation {
	return s.nav.SetCurrentPage(path)
}

// URLs returns the site URL builder.
func (s *Service) URLs() urlkit.Builder {
	return s.urls
}
