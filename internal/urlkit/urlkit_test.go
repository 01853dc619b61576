package urlkit

import "testing"

func TestPostURL(t *testing.T) {
	b := NewBuilder("", "Uncategorized")
	if got := b.PostURL("hello-world"); got != "/posts/hello-world/" {
		t.Errorf("PostURL = %q", got)
	}
}

func TestPostURL_WithBase(t *testing.T) {
	b := NewBuilder("/blog/", "Uncategorized")
	if got := b.PostURL("hello"); got != "/blog/posts/hello/" {
		t.Errorf("PostURL = %q", got)
	}
}

func TestTagURL(t *testing.T) {
	b := NewBuilder("", "Uncategorized")

	if got := b.TagURL(""); got != "/archive/" {
		t.Errorf("empty tag = %q", got)
	}
	if got := b.TagURL("astro"); got != "/archive/?tag=astro" {
		t.Errorf("tag = %q", got)
	}
	if got := b.TagURL("two words"); got != "/archive/?tag=two+words" {
		t.Errorf("escaped tag = %q", got)
	}
}

func TestCategoryURL(t *testing.T) {
	b := NewBuilder("", "Uncategorized")

	if got := b.CategoryURL("web"); got != "/archive/?category=web" {
		t.Errorf("category = %q", got)
	}
	if got := b.CategoryURL(""); got != "/archive/?uncategorized=true" {
		t.Errorf("empty category = %q", got)
	}
	if got := b.CategoryURL("Uncategorized"); got != "/archive/?uncategorized=true" {
		t.Errorf("sentinel label = %q", got)
	}
	if got := b.CategoryURL("uncategorized"); got != "/archive/?uncategorized=true" {
		t.Errorf("sentinel label lowercase = %q", got)
	}
}

func TestCategoryURL_LocalizedSentinel(t *testing.T) {
	b := NewBuilder("", "Sin categoría")
	if got := b.CategoryURL("Sin categoría"); got != "/archive/?uncategorized=true" {
		t.Errorf("localized sentinel = %q", got)
	}
}

func TestPathsEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"/about/", "about", true},
		{"/About", "/about/", true},
		{"/about", "/archive", false},
		{"", "/", true},
	}
	for _, c := range cases {
		if got := PathsEqual(c.a, c.b); got != c.want {
			t.Errorf("PathsEqual(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
