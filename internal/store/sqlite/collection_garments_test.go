package sqlite

import (
	"context"
	"testing"
	"time"
)

func setupMembershipFixtures(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCollection(ctx, makeTestCollection("coll-1", "user-1", "Favorites", false)); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	for _, id := range []string{"garm-1", "garm-2", "garm-3"} {
		if err := s.CreateGarment(ctx, makeTestGarment(id, "user-1", id)); err != nil {
			t.Fatalf("CreateGarment %s: %v", id, err)
		}
	}
	return s
}

func TestReplaceCollectionGarments(t *testing.T) {
	s := setupMembershipFixtures(t)
	ctx := context.Background()

	if err := s.ReplaceCollectionGarments(ctx, "coll-1", []string{"garm-1", "garm-2"}, time.Now()); err != nil {
		t.Fatalf("ReplaceCollectionGarments: %v", err)
	}
	if err := s.ReplaceCollectionGarments(ctx, "coll-1", []string{"garm-3"}, time.Now()); err != nil {
		t.Fatalf("ReplaceCollectionGarments again: %v", err)
	}

	ids, err := s.ListCollectionGarmentIDs(ctx, "coll-1")
	if err != nil {
		t.Fatalf("ListCollectionGarmentIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "garm-3" {
		t.Errorf("expected full overwrite to [garm-3], got %v", ids)
	}
}

func TestReplaceCollectionGarments_Empty(t *testing.T) {
	s := setupMembershipFixtures(t)
	ctx := context.Background()

	if err := s.ReplaceCollectionGarments(ctx, "coll-1", []string{"garm-1"}, time.Now()); err != nil {
		t.Fatalf("ReplaceCollectionGarments: %v", err)
	}
	if err := s.ReplaceCollectionGarments(ctx, "coll-1", nil, time.Now()); err != nil {
		t.Fatalf("ReplaceCollectionGarments empty: %v", err)
	}

	ids, err := s.ListCollectionGarmentIDs(ctx, "coll-1")
	if err != nil {
		t.Fatalf("ListCollectionGarmentIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty membership, got %v", ids)
	}
}

func TestAddCollectionGarments_Idempotent(t *testing.T) {
	s := setupMembershipFixtures(t)
	ctx := context.Background()

	if err := s.AddCollectionGarments(ctx, "coll-1", []string{"garm-1", "garm-2"}); err != nil {
		t.Fatalf("AddCollectionGarments: %v", err)
	}
	// Duplicate adds are skipped, not errored.
	if err := s.AddCollectionGarments(ctx, "coll-1", []string{"garm-1", "garm-3"}); err != nil {
		t.Fatalf("AddCollectionGarments duplicate: %v", err)
	}

	ids, err := s.ListCollectionGarmentIDs(ctx, "coll-1")
	if err != nil {
		t.Fatalf("ListCollectionGarmentIDs: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 members, got %v", ids)
	}
}

func TestRemoveCollectionGarments(t *testing.T) {
	s := setupMembershipFixtures(t)
	ctx := context.Background()

	if err := s.AddCollectionGarments(ctx, "coll-1", []string{"garm-1", "garm-2"}); err != nil {
		t.Fatalf("AddCollectionGarments: %v", err)
	}
	if err := s.RemoveCollectionGarments(ctx, "coll-1", []string{"garm-1", "garm-3"}); err != nil {
		t.Fatalf("RemoveCollectionGarments: %v", err)
	}

	ids, err := s.ListCollectionGarmentIDs(ctx, "coll-1")
	if err != nil {
		t.Fatalf("ListCollectionGarmentIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "garm-2" {
		t.Errorf("expected [garm-2], got %v", ids)
	}
}
