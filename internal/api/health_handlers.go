package api

import (
	"net/http"

	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
)

// HealthResponse contains health check data.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealthCheck reports server liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, HealthResponse{Status: "healthy"}, s.logger)
}
