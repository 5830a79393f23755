package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
)

// sessionClaims is the JWT payload of a dashboard session.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// sessionService implements SessionService with HS256 signed JWTs.
type sessionService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// Issue signs a session for user that expires after the configured lifetime.
func (s *sessionService) Issue(user *authDomain.User) (*authDomain.Session, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.expiration)

	claims := sessionClaims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session")
	}

	return &authDomain.Session{
		Token:     token,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// Parse verifies the signature and expiry of token.
func (s *sessionService) Parse(token string) (*authDomain.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrInvalidSession, err.Error())
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrInvalidSession, "invalid subject")
	}

	return &authDomain.Session{
		Token:     token,
		UserID:    userID,
		Name:      claims.Name,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// NewSessionService creates a SessionService signing with secret.
func NewSessionService(secret string, expiration time.Duration) SessionService {
	return &sessionService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}
