// Package store defines the persistence interface for the wardrobe server.
package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// Every lookup is narrowed by the owning user's ID; a record owned by a
// different user is reported as ErrNotFound, never as a permission error.
type Store interface {
	// Lifecycle
	Close() error

	// Garments
	CreateGarment(ctx context.Context, g *domain.Garment) error
	GetGarment(ctx context.Context, garmentID, userID string) (*domain.Garment, error)
	GetGarmentsByIDs(ctx context.Context, garmentIDs []string, userID string) ([]*domain.Garment, error)
	ListGarments(ctx context.Context, userID string) ([]*domain.Garment, error)
	UpdateGarment(ctx context.Context, g *domain.Garment) error
	DeleteGarment(ctx context.Context, garmentID, userID string) error
	SetGarmentTags(ctx context.Context, garmentID, userID string, tagIDs []string) error

	// FindGarments is the filtered-find operation consumed by the rule
	// engine: it returns the user's garments matching the given predicate
	// tree, newest first.
	FindGarments(ctx context.Context, userID string, pred squirrel.Sqlizer) ([]*domain.Garment, error)

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, tagID, userID string) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, tagID, userID string) error

	// Collections
	CreateCollection(ctx context.Context, c *domain.Collection) error
	GetCollection(ctx context.Context, collectionID, userID string) (*domain.Collection, error)
	ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error)
	UpdateCollection(ctx context.Context, c *domain.Collection) error
	DeleteCollection(ctx context.Context, collectionID, userID string) error

	// Collection rules (smart collections only). Rules have no identity
	// of their own and are replaced as a whole set.
	ReplaceCollectionRules(ctx context.Context, collectionID string, rules []domain.CollectionRule) error
	ListCollectionRules(ctx context.Context, collectionID string) ([]domain.CollectionRule, error)

	// Collection membership. Replace is the materializer's full overwrite;
	// Add and Remove are the manual-collection path.
	ReplaceCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string, addedAt time.Time) error
	AddCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string) error
	RemoveCollectionGarments(ctx context.Context, collectionID string, garmentIDs []string) error
	ListCollectionGarmentIDs(ctx context.Context, collectionID string) ([]string, error)
}
