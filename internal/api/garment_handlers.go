package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

// handleCreateGarment creates a new garment.
func (s *Server) handleCreateGarment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req service.CreateGarmentRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	garment, err := s.garmentService.CreateGarment(ctx, userID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, garment, s.logger)
}

// handleListGarments returns all of the user's garments.
func (s *Server) handleListGarments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	garments, err := s.garmentService.ListGarments(ctx, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garments, s.logger)
}

// handleGetGarment returns a single garment by ID.
func (s *Server) handleGetGarment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	garment, err := s.garmentService.GetGarment(ctx, userID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garment, s.logger)
}

// handleUpdateGarment applies a partial update to a garment.
func (s *Server) handleUpdateGarment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req service.UpdateGarmentRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	garment, err := s.garmentService.UpdateGarment(ctx, userID, id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garment, s.logger)
}

// UpdateStatusRequest represents the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateGarmentStatus moves a garment through the wash/wear cycle.
func (s *Server) handleUpdateGarmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	garment, err := s.garmentService.UpdateGarmentStatus(ctx, userID, id, req.Status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garment, s.logger)
}

// SetTagsRequest represents the request body for replacing a garment's tags.
type SetTagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

// handleSetGarmentTags replaces a garment's tag links.
func (s *Server) handleSetGarmentTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req SetTagsRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	garment, err := s.garmentService.SetGarmentTags(ctx, userID, id, req.TagIDs)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garment, s.logger)
}

// handleDeleteGarment removes a garment.
func (s *Server) handleDeleteGarment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	if err := s.garmentService.DeleteGarment(ctx, userID, id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
