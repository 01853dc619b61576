// Package derive implements the pure, pull-based views over the post
// collection: the filtered+sorted list and the tag/category aggregates.
// Every function is a pure function of its inputs; calling one twice with
// identical inputs yields value-equal outputs.
package derive

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/amprames/fuwari/internal/models"
	"github.com/amprames/fuwari/internal/store"
)

// Engine evaluates derivations with locale-aware string ordering.
type Engine struct {
	lang language.Tag
}

// NewEngine creates an engine that collates strings for the given language.
func NewEngine(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// FilteredPosts applies the criteria to the collection in fixed order:
// query filter, tag filter (AND), category filter, then a stable sort.
// Default criteria over a loader-populated collection reproduce the
// loader's date-descending order exactly.
func (e *Engine) FilteredPosts(posts []models.Post, c store.Criteria) []models.Post {
	filtered := make([]models.Post, 0, len(posts))

	query := strings.ToLower(c.Query)
	for _, p := range posts {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(c.Tags) > 0 && !hasAllTags(p.Tags, c.Tags) {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	// Collators are cheap to build and not safe for concurrent use, so one
	// is created per evaluation.
	coll := collate.New(e.lang, collate.IgnoreCase)
	slices.SortStableFunc(filtered, func(a, b models.Post) int {
		var cmp int
		switch c.SortBy {
		case store.SortByTitle:
			cmp = coll.CompareString(a.Title, b.Title)
		default:
			cmp = a.PublishedAt.Compare(b.PublishedAt)
		}
		if c.SortOrder == store.SortDesc {
			return -cmp
		}
		return cmp
	})

	return filtered
}

// AllTags returns the union of every post's tags over the full stored
// collection, deduplicated and sorted case-insensitively ascending.
func (e *Engine) AllTags(posts []models.Post) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	collate.New(e.lang, collate.IgnoreCase).SortStrings(out)
	return out
}

// AllCategories returns every distinct non-empty category, sorted
// case-insensitively ascending. Posts without a category contribute
// nothing; the "uncategorized" sentinel is a loader-level concern.
func (e *Engine) AllCategories(posts []models.Post) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	collate.New(e.lang, collate.IgnoreCase).SortStrings(out)
	return out
}

// matchesQuery reports whether the lowercased query occurs in the title,
// the description, or any tag.
func matchesQuery(p models.Post, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// hasAllTags reports whether postTags is a superset of want (AND, not OR).
func hasAllTags(postTags, want []string) bool {
	for _, w := range want {
		if !slices.Contains(postTags, w) {
			return false
		}
	}
	return true
}
