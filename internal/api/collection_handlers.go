package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

// handleCreateCollection creates a new collection, optionally smart with
// initial rules.
func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	var req service.CreateCollectionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collectionService.CreateCollection(ctx, userID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, collection, s.logger)
}

// handleListCollections returns all of the user's collections.
func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	collections, err := s.collectionService.ListCollections(ctx, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collections, s.logger)
}

// handleGetCollection returns a single collection with rules and membership.
func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	collection, err := s.collectionService.GetCollection(ctx, userID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// handleUpdateCollection applies a partial metadata update to a collection.
func (s *Server) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req service.UpdateCollectionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collectionService.UpdateCollection(ctx, userID, id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// handleDeleteCollection removes a collection.
func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	if err := s.collectionService.DeleteCollection(ctx, userID, id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleGetCollectionGarments resolves a collection's membership to full
// garment records.
func (s *Server) handleGetCollectionGarments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	garments, err := s.collectionService.ListCollectionGarments(ctx, userID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, garments, s.logger)
}

// AddGarmentsRequest represents the request body for adding garments to a
// manual collection.
type AddGarmentsRequest struct {
	GarmentIDs []string `json:"garment_ids"`
}

// handleAddCollectionGarments adds garments to a manual collection.
func (s *Server) handleAddCollectionGarments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req AddGarmentsRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collectionService.AddGarments(ctx, userID, id, req.GarmentIDs)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// handleRemoveCollectionGarment removes one garment from a manual collection.
func (s *Server) handleRemoveCollectionGarment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")
	garmentID := chi.URLParam(r, "garmentID")

	collection, err := s.collectionService.RemoveGarments(ctx, userID, id, []string{garmentID})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// SetRulesRequest represents the request body for replacing a smart
// collection's rule set.
type SetRulesRequest struct {
	Rules []service.RuleRequest `json:"rules"`
}

// handleSetCollectionRules replaces a smart collection's rules and
// re-materializes its membership.
func (s *Server) handleSetCollectionRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	var req SetRulesRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	collection, err := s.collectionService.SetRules(ctx, userID, id, req.Rules)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}

// handleRefreshCollection re-evaluates a smart collection's rules against
// the user's current inventory.
func (s *Server) handleRefreshCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)
	id := chi.URLParam(r, "id")

	collection, err := s.collectionService.RefreshCollection(ctx, userID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, collection, s.logger)
}
