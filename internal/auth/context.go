// Package auth provides authentication context helpers.
//
// The upstream CRM issues an opaque bearer token at sign-in. This package
// carries that token (and the signed-in operator) through request
// contexts so the network layer can attach it without reading global
// state. It is imported by both middleware and handler packages without
// causing import cycles.
package auth

import (
	"context"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	tokenContextKey contextKey = "token"
	userContextKey  contextKey = "user"
)

// WithToken stores the upstream bearer token in the context.
//
// This is called by the session middleware after reading the token
// cookie. The token is read-only from everywhere else.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// Token retrieves the upstream bearer token from the context.
// The second return is false when no token is present; callers tolerate
// that and send requests without the Authorization header.
func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// WithUser stores the signed-in operator in the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser retrieves the signed-in operator from the context.
// Returns nil if nobody is signed in.
func GetUser(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserFromRequest is a convenience wrapper around GetUser.
func GetUserFromRequest(r *http.Request) *domain.User {
	return GetUser(r.Context())
}
