// Package usecase implements sign-in for the dashboard: the credentials identity
// provider, the authentication bridge used by the login form, and user registration.
package usecase

import (
	"context"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	"github.com/invoicedash/dashboard/internal/form"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists for a duplicate email.
	Create(ctx context.Context, user *authDomain.User) error

	// GetByEmail retrieves a user by exact email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*authDomain.User, error)
}

// IdentityProvider signs users in with a named method.
type IdentityProvider interface {
	// SignIn checks fields with the named provider and returns the new session.
	// Failures are reported as *authDomain.AuthError.
	SignIn(ctx context.Context, provider string, fields form.Values) (*authDomain.Session, error)
}

// AuthUseCase defines the interface for dashboard authentication.
type AuthUseCase interface {
	// Authenticate signs in with the credentials provider. A rejected sign-in returns
	// the message to display and a nil error; errors that are not sign-in failures
	// are returned unchanged.
	Authenticate(ctx context.Context, fields form.Values) (*authDomain.Session, string, error)

	// ValidateSession verifies a session token presented by the browser.
	ValidateSession(ctx context.Context, token string) (*authDomain.Session, error)

	// CreateUser registers a user with a hashed password.
	CreateUser(ctx context.Context, input *authDomain.CreateUserInput) (*authDomain.User, error)
}
