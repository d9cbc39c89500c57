package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// makeTestTag creates a domain.Tag with sensible defaults for testing.
func makeTestTag(id, userID, name string) *domain.Tag {
	now := time.Now()
	return &domain.Tag{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Color:     "#336699",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := makeTestTag("tag-1", "user-1", "Work")
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	got, err := s.GetTag(ctx, "tag-1", "user-1")
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}

	if got.Name != "Work" {
		t.Errorf("Name: got %q, want %q", got.Name, "Work")
	}
	if got.Color != "#336699" {
		t.Errorf("Color: got %q, want %q", got.Color, "#336699")
	}
}

func TestGetTag_WrongUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTag(ctx, makeTestTag("tag-1", "user-1", "Work")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	_, err := s.GetTag(ctx, "tag-1", "user-2")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTag_DuplicateNameSameUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTag(ctx, makeTestTag("tag-1", "user-1", "Work")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	err := s.CreateTag(ctx, makeTestTag("tag-2", "user-1", "Work"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Same name under a different user is fine.
	if err := s.CreateTag(ctx, makeTestTag("tag-3", "user-2", "Work")); err != nil {
		t.Errorf("CreateTag for other user: %v", err)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Weekend", "Work", "Formal"} {
		if err := s.CreateTag(ctx, makeTestTag("tag-"+name, "user-1", name)); err != nil {
			t.Fatalf("CreateTag %s: %v", name, err)
		}
	}
	if err := s.CreateTag(ctx, makeTestTag("tag-other", "user-2", "Other")); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	tags, err := s.ListTags(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}
	// Ordered by name.
	want := []string{"Formal", "Weekend", "Work"}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d]: got %q, want %q", i, tags[i].Name, name)
		}
	}
}

func TestUpdateAndDeleteTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := makeTestTag("tag-1", "user-1", "Work")
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	tag.Name = "Office"
	tag.UpdatedAt = time.Now()
	if err := s.UpdateTag(ctx, tag); err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}

	got, err := s.GetTag(ctx, "tag-1", "user-1")
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != "Office" {
		t.Errorf("Name: got %q, want %q", got.Name, "Office")
	}

	if err := s.DeleteTag(ctx, "tag-1", "user-1"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if _, err := s.GetTag(ctx, "tag-1", "user-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
