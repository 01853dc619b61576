package derive

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/amprames/fuwari/internal/store"
)

func testView(t *testing.T) (*View, *store.PostStore, *store.SearchStore) {
	t.Helper()
	posts := store.NewPostStore()
	search := store.NewSearchStore()
	posts.Set(samplePosts(t))
	return NewView(NewEngine(language.English), posts, search), posts, search
}

func TestView_ReusesResultWhenInputsUnchanged(t *testing.T) {
	v, _, _ := testView(t)

	first := v.Posts()
	second := v.Posts()
	if len(first) == 0 {
		t.Fatal("expected posts")
	}
	if &first[0] != &second[0] {
		t.Error("repeated read with unchanged inputs re-derived the view")
	}
}

func TestView_RecomputesAfterCriteriaChange(t *testing.T) {
	v, _, search := testView(t)

	if got := len(v.Posts()); got != 3 {
		t.Fatalf("initial view = %d posts, want 3", got)
	}

	q := "astro"
	if err := search.Update(store.CriteriaPatch{Query: &q}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := len(v.Posts()); got != 2 {
		t.Errorf("filtered view = %d posts, want 2", got)
	}
}

func TestView_RecomputesAfterCollectionReplacement(t *testing.T) {
	v, posts, _ := testView(t)

	if got := v.Tags(); len(got) != 2 {
		t.Fatalf("tags = %v, want 2 entries", got)
	}

	posts.Set(nil)
	if got := v.Tags(); len(got) != 0 {
		t.Errorf("tags after clear = %v, want none", got)
	}
	if got := len(v.Posts()); got != 0 {
		t.Errorf("posts after clear = %d, want 0", got)
	}
}
