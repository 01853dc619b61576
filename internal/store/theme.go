package store

import (
	"fmt"
	"sync"

	"github.com/amprames/fuwari/internal/apperr"
)

// Theme is the user's display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// themeKey is the key under which the preference is persisted.
const themeKey = "theme"

// KV is the durable key-value medium backing the theme preference.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// ThemeStore holds the theme preference with write-through persistence:
// every Set/Toggle lands in the KV medium before the new value is visible,
// so a later read, even after a process restart, observes the last write.
type ThemeStore struct {
	mu      sync.Mutex
	kv      KV
	current Theme
}

// NewThemeStore creates a theme store, loading the persisted value if one
// exists. Absence of any prior write yields ThemeAuto.
func NewThemeStore(kv KV) (*ThemeStore, error) {
	s := &ThemeStore{kv: kv, current: ThemeAuto}
	v, ok, err := kv.Get(themeKey)
	if err != nil {
		return nil, fmt.Errorf("theme: load: %w", err)
	}
	if ok {
		if t := Theme(v); validTheme(t) {
			s.current = t
		}
	}
	return s, nil
}

// Get returns the current theme.
func (s *ThemeStore) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set writes the theme through to the KV medium and updates the in-memory
// value. Unknown themes are rejected.
func (s *ThemeStore) Set(t Theme) error {
	if !validTheme(t) {
		return fmt.Errorf("theme: %w: %q", apperr.ErrInvalidArgument, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Put(themeKey, string(t)); err != nil {
		return err
	}
	s.current = t
	return nil
}

// Toggle cycles light → dark → auto → light and returns the new theme.
func (s *ThemeStore) Toggle() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next Theme
	switch s.current {
	case ThemeLight:
		next = ThemeDark
	case ThemeDark:
		next = ThemeAuto
	default:
		next = ThemeLight
	}
	if err := s.kv.Put(themeKey, string(next)); err != nil {
		return s.current, err
	}
	s.current = next
	return next, nil
}

func validTheme(t Theme) bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	}
	return false
}
