// Package http provides the login endpoints and the session middleware guarding the dashboard.
package http

import (
	"context"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
)

// sessionKey is a context key type for storing the signed-in session.
type sessionKey struct{}

// WithSession stores the signed-in session in the context.
func WithSession(ctx context.Context, session *authDomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession retrieves the signed-in session from the context.
func GetSession(ctx context.Context) (*authDomain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*authDomain.Session)
	return session, ok
}
