package api

import (
	"context"

	"github.com/wardrobeapp/wardrobe-server/internal/errors"
)

// StaticAuthenticator resolves tokens from a fixed token-to-user map.
// It exists for development and tests; production deployments plug in a
// real identity provider behind the Authenticator interface.
type StaticAuthenticator struct {
	tokens map[string]string
}

// NewStaticAuthenticator creates an authenticator over a token -> user ID map.
func NewStaticAuthenticator(tokens map[string]string) *StaticAuthenticator {
	return &StaticAuthenticator{tokens: tokens}
}

// Authenticate implements Authenticator.
func (a *StaticAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	userID, ok := a.tokens[token]
	if !ok {
		return "", errors.Unauthorized("unknown token")
	}
	return userID, nil
}
