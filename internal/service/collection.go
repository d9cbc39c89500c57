package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
	"github.com/wardrobeapp/wardrobe-server/internal/rules"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// CollectionService orchestrates collection operations, including the
// smart-collection rule engine entry points.
type CollectionService struct {
	store     store.Store
	evaluator *rules.Evaluator
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(st store.Store, evaluator *rules.Evaluator, validator *validation.Validator, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:     st,
		evaluator: evaluator,
		validator: validator,
		logger:    logger,
	}
}

// RuleRequest is one rule as submitted by the client. Field and operator
// must name members of the closed enums; unknown values are rejected here
// rather than silently dropped at evaluation time.
type RuleRequest struct {
	Field    string `json:"field" validate:"required,rulefield"`
	Operator string `json:"operator" validate:"required,ruleoperator"`
	Value    string `json:"value" validate:"required"`
}

// CreateCollectionRequest contains fields for creating a collection.
type CreateCollectionRequest struct {
	Name              string        `json:"name" validate:"required,min=1,max=200"`
	Description       string        `json:"description" validate:"max=1000"`
	Color             string        `json:"color" validate:"omitempty,hexcolor"`
	ImagePath         string        `json:"image_path" validate:"max=500"`
	IsSmartCollection bool          `json:"is_smart_collection"`
	Rules             []RuleRequest `json:"rules" validate:"dive"`
}

// CreateCollection creates a new collection. A smart collection may carry
// initial rules, in which case its membership is materialized immediately.
// Rules on a manual collection are rejected.
func (s *CollectionService) CreateCollection(ctx context.Context, userID string, req CreateCollectionRequest) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !req.IsSmartCollection && len(req.Rules) > 0 {
		return nil, errors.Validation("rules are only valid on smart collections")
	}

	collectionID, err := id.Generate("coll")
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	now := time.Now()
	c := &domain.Collection{
		ID:                collectionID,
		UserID:            userID,
		Name:              req.Name,
		Description:       req.Description,
		Color:             req.Color,
		ImagePath:         req.ImagePath,
		IsSmartCollection: req.IsSmartCollection,
		Rules:             toDomainRules(collectionID, req.Rules),
		GarmentIDs:        []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.CreateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	if c.IsSmartCollection {
		if err := s.refresh(ctx, userID, c); err != nil {
			return nil, err
		}
	}

	s.logger.Info("collection created",
		"collection_id", collectionID,
		"user_id", userID,
		"smart", req.IsSmartCollection,
		"rules", len(req.Rules),
	)

	return c, nil
}

// GetCollection retrieves a collection with its rules and membership.
func (s *CollectionService) GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	return s.store.GetCollection(ctx, collectionID, userID)
}

// ListCollections returns all of the user's collections.
func (s *CollectionService) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	return s.store.ListCollections(ctx, userID)
}

// UpdateCollectionRequest contains metadata fields for updating a
// collection. The smart flag and the rule set are not updatable here.
type UpdateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	ImagePath   *string `json:"image_path" validate:"omitempty,max=500"`
}

// UpdateCollection applies a partial metadata update to a collection.
func (s *CollectionService) UpdateCollection(ctx context.Context, userID, collectionID string, req UpdateCollectionRequest) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.ImagePath != nil {
		c.ImagePath = *req.ImagePath
	}

	c.Touch()

	if err := s.store.UpdateCollection(ctx, c); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	return c, nil
}

// DeleteCollection removes a collection along with its rules and
// membership rows.
func (s *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteCollection(ctx, collectionID, userID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.Info("collection deleted",
		"collection_id", collectionID,
		"user_id", userID,
	)

	return nil
}

// SetRules replaces a smart collection's rule set with the given rules
// and re-materializes its membership. The old rules are discarded
// entirely, never merged with the new set.
func (s *CollectionService) SetRules(ctx context.Context, userID, collectionID string, ruleReqs []RuleRequest) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, r := range ruleReqs {
		if err := s.validator.Validate(r); err != nil {
			return nil, err
		}
	}

	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if !c.IsSmartCollection {
		// Not found rather than a validation error: the rules surface
		// only exists for smart collections.
		return nil, errors.NotFound("smart collection not found")
	}

	c.Rules = toDomainRules(collectionID, ruleReqs)
	if err := s.store.ReplaceCollectionRules(ctx, collectionID, c.Rules); err != nil {
		return nil, fmt.Errorf("replace collection rules: %w", err)
	}

	if err := s.refresh(ctx, userID, c); err != nil {
		return nil, err
	}

	s.logger.Info("collection rules replaced",
		"collection_id", collectionID,
		"user_id", userID,
		"rules", len(ruleReqs),
		"matched", len(c.GarmentIDs),
	)

	return c, nil
}

// RefreshCollection re-evaluates a smart collection's rules against the
// user's current inventory and overwrites its membership with the result.
// Refresh is idempotent: with an unchanged inventory the membership set
// does not change.
func (s *CollectionService) RefreshCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if !c.IsSmartCollection {
		return nil, errors.NotFound("smart collection not found")
	}

	if err := s.refresh(ctx, userID, c); err != nil {
		return nil, err
	}

	s.logger.Info("collection refreshed",
		"collection_id", collectionID,
		"user_id", userID,
		"matched", len(c.GarmentIDs),
	)

	return c, nil
}

// refresh materializes c's membership from its rules and updates
// c.GarmentIDs in place. The caller has already verified ownership and
// the smart flag.
func (s *CollectionService) refresh(ctx context.Context, userID string, c *domain.Collection) error {
	matched, err := s.evaluator.Evaluate(ctx, userID, c.Rules)
	if err != nil {
		return fmt.Errorf("evaluate collection rules: %w", err)
	}

	garmentIDs := make([]string, 0, len(matched))
	for _, g := range matched {
		garmentIDs = append(garmentIDs, g.ID)
	}

	if err := s.store.ReplaceCollectionGarments(ctx, c.ID, garmentIDs, time.Now()); err != nil {
		return fmt.Errorf("replace collection garments: %w", err)
	}

	c.GarmentIDs = garmentIDs
	return nil
}

// AddGarments adds garments to a manual collection. Smart collections
// reject manual edits. Every garment must belong to the user or the
// whole operation fails. Adding an existing member is a no-op.
func (s *CollectionService) AddGarments(ctx context.Context, userID, collectionID string, garmentIDs []string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(garmentIDs) == 0 {
		return nil, errors.Validation("no garments given")
	}

	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if c.IsSmartCollection {
		return nil, errors.Validation("cannot add garments to a smart collection")
	}

	if err := s.verifyGarmentsOwned(ctx, userID, garmentIDs); err != nil {
		return nil, err
	}

	if err := s.store.AddCollectionGarments(ctx, collectionID, garmentIDs); err != nil {
		return nil, fmt.Errorf("add collection garments: %w", err)
	}

	c.GarmentIDs, err = s.store.ListCollectionGarmentIDs(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection garments: %w", err)
	}

	s.logger.Info("garments added to collection",
		"collection_id", collectionID,
		"user_id", userID,
		"added", len(garmentIDs),
	)

	return c, nil
}

// RemoveGarments removes garments from a manual collection. Smart
// collections reject manual edits.
func (s *CollectionService) RemoveGarments(ctx context.Context, userID, collectionID string, garmentIDs []string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(garmentIDs) == 0 {
		return nil, errors.Validation("no garments given")
	}

	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if c.IsSmartCollection {
		return nil, errors.Validation("cannot remove garments from a smart collection")
	}

	if err := s.store.RemoveCollectionGarments(ctx, collectionID, garmentIDs); err != nil {
		return nil, fmt.Errorf("remove collection garments: %w", err)
	}

	c.GarmentIDs, err = s.store.ListCollectionGarmentIDs(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection garments: %w", err)
	}

	s.logger.Info("garments removed from collection",
		"collection_id", collectionID,
		"user_id", userID,
		"removed", len(garmentIDs),
	)

	return c, nil
}

// ListCollectionGarments resolves a collection's membership to full
// garment records.
func (s *CollectionService) ListCollectionGarments(ctx context.Context, userID, collectionID string) ([]*domain.Garment, error) {
	c, err := s.store.GetCollection(ctx, collectionID, userID)
	if err != nil {
		return nil, err
	}
	if len(c.GarmentIDs) == 0 {
		return []*domain.Garment{}, nil
	}
	return s.store.GetGarmentsByIDs(ctx, c.GarmentIDs, userID)
}

// verifyGarmentsOwned confirms every ID names a garment owned by userID.
func (s *CollectionService) verifyGarmentsOwned(ctx context.Context, userID string, garmentIDs []string) error {
	owned, err := s.store.GetGarmentsByIDs(ctx, garmentIDs, userID)
	if err != nil {
		return fmt.Errorf("get garments: %w", err)
	}

	seen := make(map[string]bool, len(owned))
	for _, g := range owned {
		seen[g.ID] = true
	}
	for _, gid := range garmentIDs {
		if !seen[gid] {
			return errors.NotFoundf("garment %s not found", gid)
		}
	}
	return nil
}

// toDomainRules converts rule requests into stored rules, preserving the
// submitted order through the position column.
func toDomainRules(collectionID string, ruleReqs []RuleRequest) []domain.CollectionRule {
	out := make([]domain.CollectionRule, 0, len(ruleReqs))
	for i, r := range ruleReqs {
		field, _ := domain.ParseRuleField(r.Field)
		op, _ := domain.ParseRuleOperator(r.Operator)
		out = append(out, domain.CollectionRule{
			CollectionID: collectionID,
			Field:        field,
			Operator:     op,
			Value:        r.Value,
			Position:     i,
		})
	}
	return out
}
