// Package loader turns raw source records into the post collection: it
// applies draft visibility, validates records, establishes the canonical
// date-descending order, stitches sequential navigation pointers, and
// publishes the result atomically. It also computes the count-based
// tag/category lists from an independent fetch.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/amprames/fuwari/internal/apperr"
	"github.com/amprames/fuwari/internal/i18n"
	"github.com/amprames/fuwari/internal/models"
	"github.com/amprames/fuwari/internal/source"
	"github.com/amprames/fuwari/internal/store"
	"github.com/amprames/fuwari/internal/urlkit"
)

// publishedLayouts are the accepted date formats for the published and
// updated frontmatter fields, tried in order.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Visibility controls draft suppression. The caller decides it explicitly
// rather than the loader reading ambient build-mode state.
type Visibility struct {
	IncludeDrafts bool
}

// Loader ingests the post collection from a document source.
type Loader struct {
	src        source.Provider
	posts      *store.PostStore
	translate  i18n.TranslateFunc
	urls       urlkit.Builder
	lang       language.Tag
	collection string
	logger     *slog.Logger
}

// New creates a loader publishing into the given post store.
func New(src source.Provider, posts *store.PostStore, translate i18n.TranslateFunc, urls urlkit.Builder, lang language.Tag, collection string, logger *slog.Logger) *Loader {
	return &Loader{
		src:        src,
		posts:      posts,
		translate:  translate,
		urls:       urls,
		lang:       lang,
		collection: collection,
		logger:     logger,
	}
}

// Load fetches all records, validates them, sorts by publish date
// descending (stable, ties keep fetch order), stitches the prev/next
// navigation pointers, and replaces the store contents in one step. On any
// error the store keeps its previous contents.
func (l *Loader) Load(ctx context.Context, vis Visibility) (int, error) {
	records, err := l.src.List(ctx, l.collection, includeFunc(vis))
	if err != nil {
		return 0, fmt.Errorf("loader: fetch: %w", err)
	}

	posts, err := buildPosts(records)
	if err != nil {
		return 0, err
	}

	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	stitchNavigation(posts)

	l.posts.Set(posts)
	l.logger.Info("loader: collection published",
		slog.Int("posts", len(posts)),
		slog.Bool("include_drafts", vis.IncludeDrafts))
	return len(posts), nil
}

// TagList counts tag occurrences across a fresh, visibility-filtered fetch.
// Keys are sorted case-insensitively ascending.
func (l *Loader) TagList(ctx context.Context, vis Visibility) ([]models.Tag, error) {
	records, err := l.src.List(ctx, l.collection, includeFunc(vis))
	if err != nil {
		return nil, fmt.Errorf("loader: fetch: %w", err)
	}

	count := make(map[string]int)
	for _, r := range records {
		for _, t := range r.Data.Tags {
			count[t]++
		}
	}

	out := make([]models.Tag, 0, len(count))
	for _, name := range sortedKeys(count, l.lang) {
		out = append(out, models.Tag{Name: name, Count: count[name]})
	}
	return out, nil
}

// CategoryList counts category occurrences across a fresh fetch. Records
// with an absent or empty category are counted under the localized
// "uncategorized" sentinel. Each entry carries its archive URL.
func (l *Loader) CategoryList(ctx context.Context, vis Visibility) ([]models.Category, error) {
	records, err := l.src.List(ctx, l.collection, includeFunc(vis))
	if err != nil {
		return nil, fmt.Errorf("loader: fetch: %w", err)
	}

	uncategorized := l.translate(i18n.KeyUncategorized)
	count := make(map[string]int)
	for _, r := range records {
		name := strings.TrimSpace(r.Data.Category)
		if name == "" {
			name = uncategorized
		}
		count[name]++
	}

	out := make([]models.Category, 0, len(count))
	for _, name := range sortedKeys(count, l.lang) {
		out = append(out, models.Category{
			Name:  name,
			Count: count[name],
			URL:   l.urls.CategoryURL(name),
		})
	}
	return out, nil
}

// includeFunc builds the source predicate implementing draft suppression.
func includeFunc(vis Visibility) source.IncludeFunc {
	if vis.IncludeDrafts {
		return nil
	}
	return func(r source.RawRecord) bool { return !r.Data.Draft }
}

// buildPosts validates every record and converts it to a Post. A missing or
// malformed published date and a duplicate slug are hard errors: the former
// is the primary sort key, the latter would silently corrupt navigation.
func buildPosts(records []source.RawRecord) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		if _, dup := seen[r.Slug]; dup {
			return nil, fmt.Errorf("loader: slug %q: %w", r.Slug, apperr.ErrDuplicateSlug)
		}
		seen[r.Slug] = struct{}{}

		published, err := parseDate(r.Data.Published)
		if err != nil {
			return nil, fmt.Errorf("loader: post %q: published date: %w", r.Slug, err)
		}

		var updated time.Time
		if r.Data.Updated != "" {
			updated, err = parseDate(r.Data.Updated)
			if err != nil {
				return nil, fmt.Errorf("loader: post %q: updated date: %w", r.Slug, err)
			}
		}

		posts = append(posts, models.Post{
			Slug:        r.Slug,
			Title:       r.Data.Title,
			Description: r.Data.Description,
			PublishedAt: published,
			UpdatedAt:   updated,
			Draft:       r.Data.Draft,
			Tags:        r.Data.Tags,
			Category:    strings.TrimSpace(r.Data.Category),
		})
	}
	return posts, nil
}

// stitchNavigation assigns the prev/next pointers relative to the
// date-descending order: every element except the first points Prev at the
// element before it (next newer), every element except the last points Next
// at the element after it (next older).
func stitchNavigation(posts []models.Post) {
	for i := range posts {
		if i > 0 {
			posts[i].PrevSlug = posts[i-1].Slug
			posts[i].PrevTitle = posts[i-1].Title
		}
		if i < len(posts)-1 {
			posts[i].NextSlug = posts[i+1].Slug
			posts[i].NextTitle = posts[i+1].Title
		}
	}
}

// parseDate parses a frontmatter date, accepting the layouts in
// publishedLayouts. An empty value is invalid.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing date", apperr.ErrInvalidRecord)
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", apperr.ErrInvalidRecord, s)
}

// sortedKeys returns the map keys sorted case-insensitively ascending with
// locale-aware collation.
func sortedKeys[V any](m map[string]V, lang language.Tag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	collate.New(lang, collate.IgnoreCase).SortStrings(keys)
	return keys
}
