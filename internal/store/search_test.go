package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/amprames/fuwari/internal/apperr"
)

func TestSearchStore_Defaults(t *testing.T) {
	s := NewSearchStore()
	got := s.Get()

	if got.Query != "" || got.Category != "" {
		t.Errorf("default query/category not empty: %+v", got)
	}
	if len(got.Tags) != 0 {
		t.Errorf("default tags = %v, want empty", got.Tags)
	}
	if got.SortBy != SortByDate || got.SortOrder != SortDesc {
		t.Errorf("default sort = %s/%s, want date/desc", got.SortBy, got.SortOrder)
	}
}

func TestSearchStore_UpdateMergesOnlyGivenFields(t *testing.T) {
	s := NewSearchStore()

	q := "astro"
	tags := []string{"svelte"}
	if err := s.Update(CriteriaPatch{Query: &q, Tags: &tags}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	cat := "web"
	if err := s.Update(CriteriaPatch{Category: &cat}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := s.Get()
	if got.Query != "astro" {
		t.Errorf("query = %q, want astro (unspecified field must survive)", got.Query)
	}
	if !reflect.DeepEqual(got.Tags, []string{"svelte"}) {
		t.Errorf("tags = %v, want [svelte]", got.Tags)
	}
	if got.Category != "web" {
		t.Errorf("category = %q, want web", got.Category)
	}
	if got.SortBy != SortByDate || got.SortOrder != SortDesc {
		t.Errorf("sort changed without being patched: %s/%s", got.SortBy, got.SortOrder)
	}
}

func TestSearchStore_UpdateRejectsUnknownSort(t *testing.T) {
	s := NewSearchStore()
	before := s.Get()
	beforeVersion := s.Version()

	bad := SortBy("popularity")
	err := s.Update(CriteriaPatch{SortBy: &bad})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}

	badOrder := SortOrder("sideways")
	err = s.Update(CriteriaPatch{SortOrder: &badOrder})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}

	if got := s.Get(); !reflect.DeepEqual(got, before) {
		t.Errorf("criteria changed after rejected update: %+v", got)
	}
	if s.Version() != beforeVersion {
		t.Error("version bumped after rejected update")
	}
}

func TestSearchStore_Reset(t *testing.T) {
	s := NewSearchStore()

	q := "astro"
	tags := []string{"svelte"}
	cat := "web"
	sb := SortByTitle
	so := SortAsc
	if err := s.Update(CriteriaPatch{Query: &q, Tags: &tags, Category: &cat, SortBy: &sb, SortOrder: &so}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	s.Reset()
	if got := s.Get(); !reflect.DeepEqual(got, DefaultCriteria()) {
		t.Errorf("after reset = %+v, want defaults", got)
	}
}

func TestSearchStore_SnapshotDoesNotAliasTags(t *testing.T) {
	s := NewSearchStore()
	tags := []string{"svelte"}
	if err := s.Update(CriteriaPatch{Tags: &tags}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	snap := s.Get()
	snap.Tags[0] = "mutated"
	if got := s.Get().Tags[0]; got != "svelte" {
		t.Errorf("internal tags mutated through snapshot: %q", got)
	}

	// The caller's slice must not alias the store either.
	tags[0] = "mutated"
	if got := s.Get().Tags[0]; got != "svelte" {
		t.Errorf("internal tags alias the patch slice: %q", got)
	}
}

func TestSearchStore_VersionChangesOnMutation(t *testing.T) {
	s := NewSearchStore()
	v0 := s.Version()

	q := "x"
	if err := s.Update(CriteriaPatch{Query: &q}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if s.Version() == v0 {
		t.Error("version unchanged after update")
	}

	v1 := s.Version()
	s.Reset()
	if s.Version() == v1 {
		t.Error("version unchanged after reset")
	}
}
