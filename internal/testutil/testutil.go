// Package testutil provides shared test helpers: a deterministic in-memory
// document source, a temporary preference database, and date parsing.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/amprames/fuwari/internal/prefs"
	"github.com/amprames/fuwari/internal/source"
)

// TestPrefs creates a temporary SQLite preference database that is
// automatically cleaned up.
func TestPrefs(t *testing.T) *prefs.DB {
	t.Helper()
	f, err := os.CreateTemp("", "fuwari-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := prefs.Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Date parses a YYYY-MM-DD date for test fixtures.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Date %q: %v", s, err)
	}
	return d
}

// StaticSource is an in-memory source.Provider serving a fixed record set.
type StaticSource struct {
	Records []source.RawRecord
	Err     error
}

// List applies the include predicate to the fixed record set.
func (s *StaticSource) List(_ context.Context, _ string, include source.IncludeFunc) ([]source.RawRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]source.RawRecord, 0, len(s.Records))
	for _, r := range s.Records {
		if include == nil || include(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Record builds a raw record for test fixtures.
func Record(slug, title, published string, tags []string, category string) source.RawRecord {
	return source.RawRecord{
		Slug: slug,
		Data: source.FrontMatter{
			Title:     title,
			Published: published,
			Tags:      tags,
			Category:  category,
		},
	}
}
