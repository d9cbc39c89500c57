package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/wardrobeapp/wardrobe-server/internal/http/response"
)

// Authenticator turns a bearer token into a user ID. Real identity lives
// outside this server; a static token map ships for development.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID string, err error)
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyUserID contextKey = "user_id"

// requireAuth is middleware that validates bearer tokens and attaches the
// user ID to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		userID, err := s.auth.Authenticate(r.Context(), parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit throttles requests per authenticated user. Unauthenticated
// requests never reach it; requireAuth runs first.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(getUserID(r.Context())) {
			response.Error(w, http.StatusTooManyRequests, "Too many requests", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}
