// Package domain defines the identities that may sign in to the dashboard and the
// sessions issued to them.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/errors"
)

// User is a dashboard account verified by the credentials provider.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string // password hash (Argon2id PHC string or bcrypt)
	CreatedAt time.Time
}

// CreateUserInput contains the fields for registering a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// Session is the signed-in state issued by an identity provider.
type Session struct {
	Token     string
	UserID    uuid.UUID
	Name      string
	Email     string
	ExpiresAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates no user has the requested email.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidSession indicates a session token that is malformed, forged or expired.
	ErrInvalidSession = errors.Wrap(errors.ErrUnauthorized, "invalid session")
)
