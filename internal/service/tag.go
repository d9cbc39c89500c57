package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/color"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// TagService orchestrates tag operations.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateTagRequest contains fields for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateTag creates a new tag. Tag names are unique per user.
func (s *TagService) CreateTag(ctx context.Context, userID string, req CreateTagRequest) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	// Tags without an explicit color get a stable one derived from the name.
	tagColor := req.Color
	if tagColor == "" {
		tagColor = color.ForName(req.Name)
	}

	now := time.Now()
	t := &domain.Tag{
		ID:        tagID,
		UserID:    userID,
		Name:      req.Name,
		Color:     tagColor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateTag(ctx, t); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created",
		"tag_id", tagID,
		"user_id", userID,
		"name", req.Name,
	)

	return t, nil
}

// GetTag retrieves a tag by ID, scoped to the user.
func (s *TagService) GetTag(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	return s.store.GetTag(ctx, tagID, userID)
}

// ListTags returns all of the user's tags, alphabetically.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// UpdateTagRequest contains fields for updating a tag.
type UpdateTagRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTag applies a partial update to a tag.
func (s *TagService) UpdateTag(ctx context.Context, userID, tagID string, req UpdateTagRequest) (*domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := s.store.GetTag(ctx, tagID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Color != nil {
		t.Color = *req.Color
	}

	t.Touch()

	if err := s.store.UpdateTag(ctx, t); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}

	return t, nil
}

// DeleteTag removes a tag and its garment links.
func (s *TagService) DeleteTag(ctx context.Context, userID, tagID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteTag(ctx, tagID, userID); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.Info("tag deleted",
		"tag_id", tagID,
		"user_id", userID,
	)

	return nil
}
