package store

import (
	"testing"

	"github.com/amprames/fuwari/internal/models"
)

func TestPostStore_SetReplacesWholeCollection(t *testing.T) {
	s := NewPostStore()
	if s.Len() != 0 {
		t.Fatalf("fresh store has %d posts", s.Len())
	}

	s.Set([]models.Post{{Slug: "a"}, {Slug: "b"}})
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}

	s.Set([]models.Post{{Slug: "c"}})
	got := s.Get()
	if len(got) != 1 || got[0].Slug != "c" {
		t.Errorf("collection = %v, want just c", got)
	}
}

func TestPostStore_VersionChangesOnSet(t *testing.T) {
	s := NewPostStore()
	v0 := s.Version()

	s.Set(nil)
	if s.Version() == v0 {
		t.Error("version unchanged after Set")
	}
}
