// Package service provides the business logic layer for garments, tags,
// and collections.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// GarmentService orchestrates garment operations.
type GarmentService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewGarmentService creates a new garment service.
func NewGarmentService(st store.Store, validator *validation.Validator, logger *slog.Logger) *GarmentService {
	return &GarmentService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateGarmentRequest contains fields for creating a garment.
type CreateGarmentRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Category  string   `json:"category" validate:"required,min=1,max=100"`
	Color     string   `json:"color" validate:"max=100"`
	Brand     string   `json:"brand" validate:"max=100"`
	Material  string   `json:"material" validate:"max=100"`
	Status    string   `json:"status" validate:"omitempty,garmentstatus"`
	ImagePath string   `json:"image_path" validate:"max=500"`
	TagIDs    []string `json:"tag_ids"`
}

// CreateGarment creates a new garment for the user. New garments default
// to the clean status unless the request says otherwise.
func (s *GarmentService) CreateGarment(ctx context.Context, userID string, req CreateGarmentRequest) (*domain.Garment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	garmentID, err := id.Generate("garm")
	if err != nil {
		return nil, fmt.Errorf("generate garment ID: %w", err)
	}

	status := domain.StatusClean
	if req.Status != "" {
		status, _ = domain.ParseGarmentStatus(req.Status)
	}

	now := time.Now()
	g := &domain.Garment{
		ID:        garmentID,
		UserID:    userID,
		Name:      req.Name,
		Category:  req.Category,
		Color:     req.Color,
		Brand:     req.Brand,
		Material:  req.Material,
		Status:    status,
		ImagePath: req.ImagePath,
		TagIDs:    req.TagIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateGarment(ctx, g); err != nil {
		return nil, fmt.Errorf("create garment: %w", err)
	}

	s.logger.Info("garment created",
		"garment_id", garmentID,
		"user_id", userID,
		"category", req.Category,
	)

	return g, nil
}

// GetGarment retrieves a garment by ID, scoped to the user.
func (s *GarmentService) GetGarment(ctx context.Context, userID, garmentID string) (*domain.Garment, error) {
	return s.store.GetGarment(ctx, garmentID, userID)
}

// ListGarments returns all of the user's garments, newest first.
func (s *GarmentService) ListGarments(ctx context.Context, userID string) ([]*domain.Garment, error) {
	return s.store.ListGarments(ctx, userID)
}

// UpdateGarmentRequest contains fields for updating a garment.
// Nil fields are left unchanged.
type UpdateGarmentRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string `json:"category" validate:"omitempty,min=1,max=100"`
	Color     *string `json:"color" validate:"omitempty,max=100"`
	Brand     *string `json:"brand" validate:"omitempty,max=100"`
	Material  *string `json:"material" validate:"omitempty,max=100"`
	Status    *string `json:"status" validate:"omitempty,garmentstatus"`
	ImagePath *string `json:"image_path" validate:"omitempty,max=500"`
}

// UpdateGarment applies a partial update to a garment.
func (s *GarmentService) UpdateGarment(ctx context.Context, userID, garmentID string, req UpdateGarmentRequest) (*domain.Garment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	g, err := s.store.GetGarment(ctx, garmentID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.Color != nil {
		g.Color = *req.Color
	}
	if req.Brand != nil {
		g.Brand = *req.Brand
	}
	if req.Material != nil {
		g.Material = *req.Material
	}
	if req.Status != nil {
		g.Status, _ = domain.ParseGarmentStatus(*req.Status)
	}
	if req.ImagePath != nil {
		g.ImagePath = *req.ImagePath
	}

	g.Touch()

	if err := s.store.UpdateGarment(ctx, g); err != nil {
		return nil, fmt.Errorf("update garment: %w", err)
	}

	return g, nil
}

// UpdateGarmentStatus moves a garment through the wash/wear cycle.
func (s *GarmentService) UpdateGarmentStatus(ctx context.Context, userID, garmentID, status string) (*domain.Garment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseGarmentStatus(status)
	if !ok {
		return nil, errors.Validationf("unknown garment status %q", status)
	}

	g, err := s.store.GetGarment(ctx, garmentID, userID)
	if err != nil {
		return nil, err
	}

	g.Status = parsed
	g.Touch()

	if err := s.store.UpdateGarment(ctx, g); err != nil {
		return nil, fmt.Errorf("update garment status: %w", err)
	}

	s.logger.Info("garment status updated",
		"garment_id", garmentID,
		"user_id", userID,
		"status", status,
	)

	return g, nil
}

// SetGarmentTags replaces a garment's tag links with the given set.
// Every tag must belong to the user.
func (s *GarmentService) SetGarmentTags(ctx context.Context, userID, garmentID string, tagIDs []string) (*domain.Garment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.store.SetGarmentTags(ctx, garmentID, userID, tagIDs); err != nil {
		return nil, fmt.Errorf("set garment tags: %w", err)
	}

	return s.store.GetGarment(ctx, garmentID, userID)
}

// DeleteGarment removes a garment. Tag links and collection memberships
// cascade away with it.
func (s *GarmentService) DeleteGarment(ctx context.Context, userID, garmentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteGarment(ctx, garmentID, userID); err != nil {
		return fmt.Errorf("delete garment: %w", err)
	}

	s.logger.Info("garment deleted",
		"garment_id", garmentID,
		"user_id", userID,
	)

	return nil
}
