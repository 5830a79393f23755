// Package service provides the password and session primitives used by the
// credentials identity provider.
package service

import (
	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns the Argon2id PHC string of a plain password.
	Hash(plainPassword string) (string, error)

	// Compare reports whether plainPassword matches hashedPassword. Argon2id
	// hashes and bcrypt hashes imported from seed data are both accepted.
	Compare(plainPassword string, hashedPassword string) bool
}

// SessionService issues and verifies signed session tokens.
type SessionService interface {
	// Issue signs a new session for user.
	Issue(user *authDomain.User) (*authDomain.Session, error)

	// Parse verifies token and returns the session it carries.
	// Returns ErrInvalidSession for malformed, forged or expired tokens.
	Parse(token string) (*authDomain.Session, error)
}
