package source

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FS implements Provider backed by a directory of Markdown files with YAML
// frontmatter. Each collection is a subdirectory of the content root; the
// slug of a record is its path relative to the collection directory, without
// the .md extension.
type FS struct {
	root string // absolute path to the content directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("source: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// List walks the collection directory and parses the frontmatter of every
// .md file into a RawRecord.
func (f *FS) List(ctx context.Context, collection string, include IncludeFunc) ([]RawRecord, error) {
	base := f.root
	if collection != "" {
		base = filepath.Join(f.root, filepath.Clean(collection))
	}
	if !strings.HasPrefix(base, f.root) {
		return nil, fmt.Errorf("source: collection escapes content root: %s", collection)
	}

	var out []RawRecord
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		rec := RawRecord{Slug: slugFromPath(rel)}
		if err := parseFrontmatter(data, &rec.Data); err != nil {
			return fmt.Errorf("source: %s: %w", rel, err)
		}
		if include == nil || include(rec) {
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: list %s: %w", collection, err)
	}
	return out, nil
}

// slugFromPath turns a relative file path into a slug: forward slashes,
// no .md extension.
func slugFromPath(rel string) string {
	s := filepath.ToSlash(rel)
	return strings.TrimSuffix(s, ".md")
}

// parseFrontmatter decodes the YAML block between leading --- delimiters.
// A file without frontmatter yields a zero FrontMatter; invalid YAML is an
// error since the metadata is the only part of the document we consume.
func parseFrontmatter(data []byte, fm *FrontMatter) error {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil
	}

	if err := yaml.Unmarshal(rest[:idx], fm); err != nil {
		return fmt.Errorf("frontmatter: %w", err)
	}
	return nil
}
