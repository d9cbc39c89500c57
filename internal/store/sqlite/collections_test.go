package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// makeTestCollection creates a domain.Collection with sensible defaults for testing.
func makeTestCollection(id, userID, name string, smart bool) *domain.Collection {
	now := time.Now()
	return &domain.Collection{
		ID:                id,
		UserID:            userID,
		Name:              name,
		IsSmartCollection: smart,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestCreateAndGetCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCollection("coll-1", "user-1", "Summer", false)
	c.Description = "Warm weather wear"
	if err := s.CreateCollection(ctx, c); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	got, err := s.GetCollection(ctx, "coll-1", "user-1")
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}

	if got.Name != "Summer" {
		t.Errorf("Name: got %q, want %q", got.Name, "Summer")
	}
	if got.Description != "Warm weather wear" {
		t.Errorf("Description: got %q", got.Description)
	}
	if got.IsSmartCollection {
		t.Error("IsSmartCollection: got true, want false")
	}
}

func TestCreateCollection_WithInitialRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCollection("coll-1", "user-1", "Blue Shirts", true)
	c.Rules = []domain.CollectionRule{
		{Field: domain.FieldCategory, Operator: domain.OpEquals, Value: "Shirts"},
		{Field: domain.FieldColor, Operator: domain.OpContains, Value: "blue"},
	}
	if err := s.CreateCollection(ctx, c); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	got, err := s.GetCollection(ctx, "coll-1", "user-1")
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if len(got.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got.Rules))
	}
	if got.Rules[0].Field != domain.FieldCategory || got.Rules[1].Field != domain.FieldColor {
		t.Errorf("rule order not preserved: %+v", got.Rules)
	}
}

func TestGetCollection_WrongUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCollection(ctx, makeTestCollection("coll-1", "user-1", "Summer", false)); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	_, err := s.GetCollection(ctx, "coll-1", "user-2")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceCollectionRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCollection("coll-1", "user-1", "Smart", true)
	c.Rules = []domain.CollectionRule{
		{Field: domain.FieldBrand, Operator: domain.OpEquals, Value: "Acme"},
	}
	if err := s.CreateCollection(ctx, c); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	next := []domain.CollectionRule{
		{Field: domain.FieldStatus, Operator: domain.OpEquals, Value: "CLEAN"},
		{Field: domain.FieldMaterial, Operator: domain.OpNotContains, Value: "wool"},
	}
	if err := s.ReplaceCollectionRules(ctx, "coll-1", next); err != nil {
		t.Fatalf("ReplaceCollectionRules: %v", err)
	}

	rules, err := s.ListCollectionRules(ctx, "coll-1")
	if err != nil {
		t.Fatalf("ListCollectionRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules after replace, got %d", len(rules))
	}
	// The old rule set is fully discarded.
	for _, r := range rules {
		if r.Field == domain.FieldBrand {
			t.Errorf("old rule survived replace: %+v", r)
		}
	}
	if rules[0].Position != 0 || rules[1].Position != 1 {
		t.Errorf("positions not assigned in order: %+v", rules)
	}
}

func TestDeleteCollection_CascadesRulesAndMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCollection("coll-1", "user-1", "Smart", true)
	c.Rules = []domain.CollectionRule{
		{Field: domain.FieldCategory, Operator: domain.OpEquals, Value: "Shirts"},
	}
	if err := s.CreateCollection(ctx, c); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := s.CreateGarment(ctx, makeTestGarment("garm-1", "user-1", "Shirt")); err != nil {
		t.Fatalf("CreateGarment: %v", err)
	}
	if err := s.ReplaceCollectionGarments(ctx, "coll-1", []string{"garm-1"}, time.Now()); err != nil {
		t.Fatalf("ReplaceCollectionGarments: %v", err)
	}

	if err := s.DeleteCollection(ctx, "coll-1", "user-1"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}

	for _, table := range []string{"collection_rules", "collection_garments"} {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table + ` WHERE collection_id = 'coll-1'`).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected %s to cascade, found %d rows", table, count)
		}
	}
}

func TestUpdateCollection_WrongUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := makeTestCollection("coll-1", "user-1", "Summer", false)
	if err := s.CreateCollection(ctx, c); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	c.UserID = "user-2"
	c.Name = "Hijacked"
	if err := s.UpdateCollection(ctx, c); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong user, got %v", err)
	}
}
