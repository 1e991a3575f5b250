package httpx

import (
	"context"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session from context and a boolean
// indicating presence. Every request that passed the session middleware has
// one, authenticated or not.
func GetSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// IdentityFromContext returns the authenticated identity, or nil for guests.
func IdentityFromContext(ctx context.Context) *domainauth.Identity {
	s, ok := GetSessionFromContext(ctx)
	if !ok || !s.Authenticated() {
		return nil
	}
	identity := s.Credentials.Identity
	return &identity
}

// TokenFromContext returns the backend bearer token, or empty for guests.
func TokenFromContext(ctx context.Context) string {
	s, ok := GetSessionFromContext(ctx)
	if !ok {
		return ""
	}
	return s.Credentials.Token
}
