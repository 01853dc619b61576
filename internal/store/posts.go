// Package store holds the session state containers: the canonical post
// collection, the user's search criteria, the persisted theme preference,
// and the ephemeral UI/navigation state. Each store is an independently
// constructible container so the engine stays testable in isolation.
package store

import (
	"sync"

	"github.com/amprames/fuwari/internal/models"
)

// PostStore is the canonical, unfiltered post collection for the session.
// Set replaces the whole collection atomically; readers observe either the
// old or the new slice, never a partial one. The store performs no
// validation — that is the loader's responsibility.
type PostStore struct {
	mu      sync.RWMutex
	posts   []models.Post
	version uint64
}

// NewPostStore creates an empty post store.
func NewPostStore() *PostStore {
	return &PostStore{}
}

// Set replaces the entire collection.
func (s *PostStore) Set(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
	s.version++
}

// Get returns the current collection by reference. Callers must not mutate
// the returned slice.
func (s *PostStore) Get() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// Version returns a counter that changes on every Set. Derived views use it
// to decide whether a cached result is still current.
func (s *PostStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of posts in the collection.
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
