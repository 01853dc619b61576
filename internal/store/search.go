package store

import (
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/amprames/fuwari/internal/apperr"
)

// Sort fields.
type SortBy string

const (
	SortByDate  SortBy = "date"
	SortByTitle SortBy = "title"
)

// Sort directions.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Criteria is the user's current query/tag/category/sort selection.
// Tags carry AND semantics: a post matches only when its own tag set is a
// superset of the criteria tags.
type Criteria struct {
	Query     string    `json:"query"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category"`
	SortBy    SortBy    `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order"`
}

// DefaultCriteria returns the unconstrained selection: empty query, no tags,
// no category, sorted by publish date descending.
func DefaultCriteria() Criteria {
	return Criteria{
		Query:     "",
		Tags:      []string{},
		Category:  "",
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// CriteriaPatch is a partial update of the criteria. Nil fields are left
// untouched by Update.
type CriteriaPatch struct {
	Query     *string    `json:"query,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	Category  *string    `json:"category,omitempty"`
	SortBy    *SortBy    `json:"sort_by,omitempty"`
	SortOrder *SortOrder `json:"sort_order,omitempty"`
}

// Validate rejects unknown sort fields and directions so caller bugs are not
// silently masked by a default.
func (p CriteriaPatch) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.SortBy, validation.In(SortByDate, SortByTitle)),
		validation.Field(&p.SortOrder, validation.In(SortAsc, SortDesc)),
	)
	if err != nil {
		return fmt.Errorf("criteria: %w: %w", apperr.ErrInvalidArgument, err)
	}
	return nil
}

// SearchStore holds the current criteria. Derivation is pull-based: the
// store only bumps a version counter on change, and derived views recompute
// on their next read.
type SearchStore struct {
	mu       sync.RWMutex
	criteria Criteria
	version  uint64
}

// NewSearchStore creates a store holding the default criteria.
func NewSearchStore() *SearchStore {
	return &SearchStore{criteria: DefaultCriteria()}
}

// Get returns a snapshot of the current criteria.
func (s *SearchStore) Get() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Update merges a partial set of fields into the current criteria.
// Unspecified fields are retained. Invalid sort values are rejected and the
// criteria are left unchanged.
func (s *SearchStore) Update(p CriteriaPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Query != nil {
		s.criteria.Query = *p.Query
	}
	if p.Tags != nil {
		tags := make([]string, len(*p.Tags))
		copy(tags, *p.Tags)
		s.criteria.Tags = tags
	}
	if p.Category != nil {
		s.criteria.Category = *p.Category
	}
	if p.SortBy != nil {
		s.criteria.SortBy = *p.SortBy
	}
	if p.SortOrder != nil {
		s.criteria.SortOrder = *p.SortOrder
	}
	s.version++
	return nil
}

// Reset restores every field to its default.
func (s *SearchStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = DefaultCriteria()
	s.version++
}

// Version returns a counter that changes on every mutation.
func (s *SearchStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// snapshot copies the criteria so callers cannot alias the internal tag
// slice. Callers must hold at least a read lock.
func (s *SearchStore) snapshot() Criteria {
	c := s.criteria
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)
	c.Tags = tags
	return c
}
