// Package auth resolves HTTP requests to user identities. Handlers call
// ExtractToken then Authenticator.Authenticate inline; there is no
// middleware layer.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/crystal-grimoire/backend/internal/model"
)

// Authenticator maps a bearer token onto a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// ExtractToken pulls the bearer token from the Authorization header.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header: %w", model.ErrUnauthenticated)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", fmt.Errorf("expected 'Bearer <token>' Authorization header: %w", model.ErrUnauthenticated)
	}
	return parts[1], nil
}

// UserFromRequest is the one-call form handlers use.
func UserFromRequest(r *http.Request, a Authenticator) (string, error) {
	token, err := ExtractToken(r)
	if err != nil {
		return "", err
	}
	return a.Authenticate(r.Context(), token)
}

// StaticAuthenticator validates tokens against a fixed table. Used for
// local development and tests.
type StaticAuthenticator struct {
	tokens map[string]string
}

func NewStaticAuthenticator(tokens map[string]string) *StaticAuthenticator {
	cp := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cp[k] = v
	}
	return &StaticAuthenticator{tokens: cp}
}

func (s *StaticAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", fmt.Errorf("unknown token: %w", model.ErrUnauthenticated)
	}
	return userID, nil
}

// DevTokenPrefix marks tokens the passthrough authenticator accepts.
const DevTokenPrefix = "dev-"

// DevAuthenticator accepts any token of the form "dev-<userID>" and
// resolves it to that user. It must never be wired in production builds.
type DevAuthenticator struct{}

func (DevAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	if !strings.HasPrefix(token, DevTokenPrefix) || token == DevTokenPrefix {
		return "", fmt.Errorf("dev tokens must look like %s<userId>: %w", DevTokenPrefix, model.ErrUnauthenticated)
	}
	return strings.TrimPrefix(token, DevTokenPrefix), nil
}
