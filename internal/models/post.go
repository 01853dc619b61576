// Package models defines the domain types for Fuwari.
package models

import "time"

// Post represents one published content document. Posts are created by the
// loader once per session and are immutable afterwards; the navigation
// pointers reflect the date-descending order of the full collection and are
// never recomputed when a filter narrows the view.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
	Draft       bool      `json:"draft,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category,omitempty"`

	// Navigation pointers: Prev walks toward the newer neighbour, Next
	// toward the older one. The newest post has no Prev, the oldest no Next.
	PrevSlug  string `json:"prev_slug,omitempty"`
	PrevTitle string `json:"prev_title,omitempty"`
	NextSlug  string `json:"next_slug,omitempty"`
	NextTitle string `json:"next_title,omitempty"`
}

// Tag is a tag name with its usage count across the collection.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Category is a category name with its usage count and archive URL.
// Posts without a category are counted under the localized
// "uncategorized" sentinel.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}
