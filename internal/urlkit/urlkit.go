// Package urlkit builds root-relative paths for posts, tag archives, and
// category archives.
package urlkit

import (
	"net/url"
	"regexp"
	"strings"
)

var multiSlash = regexp.MustCompile(`/+`)

// Builder constructs site URLs under a base path. The uncategorized label is
// the localized sentinel for posts without a category; requesting the
// category URL for it (or for an empty category) yields the dedicated
// ?uncategorized=true form instead of the general ?category= form.
type Builder struct {
	base          string
	uncategorized string
}

// NewBuilder creates a Builder. An empty base means the site root.
func NewBuilder(base, uncategorizedLabel string) Builder {
	return Builder{base: base, uncategorized: uncategorizedLabel}
}

// PostURL returns the URL of a post page.
func (b Builder) PostURL(slug string) string {
	return b.url("/posts/" + slug + "/")
}

// TagURL returns the archive URL filtered by tag. An empty tag yields the
// unfiltered archive.
func (b Builder) TagURL(tag string) string {
	if tag == "" {
		return b.url("/archive/")
	}
	return b.url("/archive/?tag=" + url.QueryEscape(strings.TrimSpace(tag)))
}

// CategoryURL returns the archive URL filtered by category. Empty, absent,
// and the localized "uncategorized" label all map to the sentinel form.
func (b Builder) CategoryURL(category string) string {
	c := strings.TrimSpace(category)
	if c == "" || strings.EqualFold(c, b.uncategorized) {
		return b.url("/archive/?uncategorized=true")
	}
	return b.url("/archive/?category=" + url.QueryEscape(c))
}

// PathsEqual compares two paths ignoring leading/trailing slashes and case.
func PathsEqual(a, b string) bool {
	return normalizePath(a) == normalizePath(b)
}

func normalizePath(p string) string {
	return strings.ToLower(strings.Trim(p, "/"))
}

// url joins the base path with p, collapsing duplicate slashes.
func (b Builder) url(p string) string {
	joined := "/" + b.base + "/" + p
	return multiSlash.ReplaceAllString(joined, "/")
}
