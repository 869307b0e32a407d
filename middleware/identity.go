package middleware

import (
	"context"
	"net/http"
)

// Credential sources. Exactly one path resolves per request.
const (
	SourceAPIKey  = "api_key"
	SourceSession = "session"
)

// Identity is the resolved principal of an inbound request. It is built
// per-request by the credential resolvers and passed to downstream handlers
// through the request context; nothing reaches into ambient auth state.
type Identity struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"` // "" when the user record carries no role
	Source string `json:"source"`
}

type identityCtxKey struct{}

// WithIdentity returns a context carrying the resolved identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFrom extracts the resolved identity from a request, if any.
func IdentityFrom(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityCtxKey{}).(Identity)
	return id, ok
}
