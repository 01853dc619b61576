package browse

import (
	"io"
	"log/slog"
	"testing"

	"golang.org/x/text/language"

	"github.com/amprames/fuwari/internal/derive"
	"github.com/amprames/fuwari/internal/i18n"
	"github.com/amprames/fuwari/internal/loader"
	"github.com/amprames/fuwari/internal/source"
	"github.com/amprames/fuwari/internal/store"
	"github.com/amprames/fuwari/internal/testutil"
	"github.com/amprames/fuwari/internal/urlkit"
)

func testService(t *testing.T) *Service {
	t.Helper()

	src := &testutil.StaticSource{Records: []source.RawRecord{
		testutil.Record("a", "Alpha", "2024-01-10", []string{"svelte"}, "web"),
		testutil.Record("b", "Beta", "2024-02-01", []string{"astro", "svelte"}, "ssg"),
		testutil.Record("c", "Gamma", "2023-12-31", []string{"astro"}, "web"),
	}}

	posts := store.NewPostStore()
	theme, err := store.NewThemeStore(testutil.TestPrefs(t))
	if err != nil {
		t.Fatalf("NewThemeStore: %v", err)
	}

	translate := i18n.Translator("en")
	urls := urlkit.NewBuilder("", translate(i18n.KeyUncategorized))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ldr := loader.New(src, posts, translate, urls, language.English, "posts", logger)

	svc := NewService(posts, store.NewSearchStore(), theme, store.NewUIStore(),
		store.NewNavStore(), derive.NewEngine(language.English), ldr, urls, loader.Visibility{})
	if _, err := svc.Reload(t.Context()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	return svc
}

func TestQueryPosts_DoesNotTouchSessionCriteria(t *testing.T) {
	svc := testService(t)

	got := svc.QueryPosts("astro")
	if len(got) != 2 {
		t.Fatalf("QueryPosts = %d posts, want 2", len(got))
	}

	if c := svc.Search(); c.Query != "" {
		t.Errorf("session query mutated by ad-hoc query: %q", c.Query)
	}
	if len(svc.FilteredPosts()) != 3 {
		t.Errorf("session view shrank after ad-hoc query")
	}
}

func TestGetPost_IgnoresActiveFilter(t *testing.T) {
	svc := testService(t)

	q := "astro"
	if err := svc.UpdateSearch(store.CriteriaPatch{Query: &q}); err != nil {
		t.Fatalf("UpdateSearch: %v", err)
	}

	// a does not match the filter but is still addressable by slug.
	post, err := svc.GetPost("a")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "Alpha" {
		t.Errorf("post = %+v", post)
	}
}

func TestListPosts_CarriesURLs(t *testing.T) {
	svc := testService(t)

	items := svc.ListPosts()
	if len(items) == 0 {
		t.Fatal("expected items")
	}
	if items[0].URL != "/posts/b/" {
		t.Errorf("url = %q, want /posts/b/", items[0].URL)
	}
}
