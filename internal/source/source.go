// Package source defines the document source abstraction that yields raw
// post records for the loader.
package source

import "context"

// FrontMatter carries the metadata block of a raw record. Published and
// Updated stay unparsed strings here; date validation is the loader's job.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Published   string   `yaml:"published"`
	Updated     string   `yaml:"updated"`
	Draft       bool     `yaml:"draft"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
}

// RawRecord is one document as delivered by the source, prior to any
// validation or ordering.
type RawRecord struct {
	Slug string
	Data FrontMatter
}

// IncludeFunc decides whether a record is part of a listing.
type IncludeFunc func(RawRecord) bool

// Provider is the interface for document sources.
type Provider interface {
	// List returns every record of the named collection for which include
	// returns true. A nil include keeps everything.
	List(ctx context.Context, collection string, include IncludeFunc) ([]RawRecord, error)
}
