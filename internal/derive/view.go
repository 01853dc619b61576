package derive

import (
	"sync"

	"github.com/amprames/fuwari/internal/models"
	"github.com/amprames/fuwari/internal/store"
)

// View memoizes derivations against the version counters of the two input
// stores: repeated reads with unchanged inputs return the previously derived
// slice without re-deriving. Correctness never depends on the memo — a cold
// cache simply recomputes.
type View struct {
	eng    *Engine
	posts  *store.PostStore
	search *store.SearchStore

	mu sync.Mutex

	filteredPostsV uint64
	filteredCritV  uint64
	filtered       []models.Post
	filteredOK     bool

	aggPostsV  uint64
	tags       []string
	categories []string
	aggOK      bool
}

// NewView creates a view over the given stores.
func NewView(eng *Engine, posts *store.PostStore, search *store.SearchStore) *View {
	return &View{eng: eng, posts: posts, search: search}
}

// Posts returns the filtered, sorted post list for the current criteria.
func (v *View) Posts() []models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()

	pv, cv := v.posts.Version(), v.search.Version()
	if v.filteredOK && v.filteredPostsV == pv && v.filteredCritV == cv {
		return v.filtered
	}
	v.filtered = v.eng.FilteredPosts(v.posts.Get(), v.search.Get())
	v.filteredPostsV, v.filteredCritV = pv, cv
	v.filteredOK = true
	return v.filtered
}

// Tags returns the deduplicated, sorted tag union of the stored collection.
func (v *View) Tags() []string {
	v.refreshAggregates()
	return v.tags
}

// Categories returns the distinct non-empty categories of the stored
// collection.
func (v *View) Categories() []string {
	v.refreshAggregates()
	return v.categories
}

func (v *View) refreshAggregates() {
	v.mu.Lock()
	defer v.mu.Unlock()

	pv := v.posts.Version()
	if v.aggOK && v.aggPostsV == pv {
		return
	}
	posts := v.posts.Get()
	v.tags = v.eng.AllTags(posts)
	v.categories = v.eng.AllCategories(posts)
	v.aggPostsV = pv
	v.aggOK = true
}
