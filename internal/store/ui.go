package store

import "sync"

// UIState is the transient per-session presentation state.
type UIState struct {
	SidebarOpen bool `json:"sidebar_open"`
	SearchOpen  bool `json:"search_open"`
	IsLoading   bool `json:"is_loading"`
}

// UIStore holds the ephemeral UI flags. Every mutation touches exactly one
// field; the state resets with the session.
type UIStore struct {
	mu    sync.Mutex
	state UIState
}

// NewUIStore creates a UI store with all flags cleared.
func NewUIStore() *UIStore {
	return &UIStore{}
}

// Get returns a snapshot of the UI state.
func (s *UIStore) Get() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ToggleSidebar flips the sidebar flag.
func (s *UIStore) ToggleSidebar() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = !s.state.SidebarOpen
	return s.state
}

// ToggleSearch flips the search panel flag.
func (s *UIStore) ToggleSearch() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchOpen = !s.state.SearchOpen
	return s.state
}

// SetLoading sets the loading flag only.
func (s *UIStore) SetLoading(loading bool) UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = loading
	return s.state
}

// Navigation is a one-level page history: setting a new current page pushes
// the old current into previous.
type Navigation struct {
	CurrentPage  string `json:"current_page"`
	PreviousPage string `json:"previous_page"`
}

// NavStore holds the navigation history.
type NavStore struct {
	mu  sync.Mutex
	nav Navigation
}

// NewNavStore creates an empty navigation store; a fresh session yields an
// empty previous page.
func NewNavStore() *NavStore {
	return &NavStore{}
}

// Get returns the current navigation state.
func (s *NavStore) Get() Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// SetCurrentPage atomically moves the current page into previous and sets
// the new current page.
func (s *NavStore) SetCurrentPage(path string) Navigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = Navigation{
		CurrentPage:  path,
		PreviousPage: s.nav.CurrentPage,
	}
	return s.nav
}
