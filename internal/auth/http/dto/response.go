// Package dto provides data transfer objects for the auth HTTP responses.
package dto

import (
	"time"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
)

// SessionResponse describes the signed-in user. The token itself is never echoed.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapSessionToResponse converts a session to an API response.
func MapSessionToResponse(session *authDomain.Session) SessionResponse {
	return SessionResponse{
		UserID:    session.UserID.String(),
		Name:      session.Name,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt.UTC(),
	}
}
