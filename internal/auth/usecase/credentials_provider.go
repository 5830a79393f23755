package usecase

import (
	"context"
	"sync"

	validation "github.com/jellydator/validation"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	authService "github.com/invoicedash/dashboard/internal/auth/service"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	"github.com/invoicedash/dashboard/internal/form"
	customValidation "github.com/invoicedash/dashboard/internal/validation"
)

// minPasswordLength is the shortest password the login form accepts.
const minPasswordLength = 6

// unknownUserPassword is hashed once and compared against when the email has
// no account.
const unknownUserPassword = "unknown-user-placeholder"

// credentialsProvider implements IdentityProvider for email and password sign-in.
type credentialsProvider struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	sessionService  authService.SessionService

	unknownUserOnce sync.Once
	unknownUserHash string
}

// NewCredentialsProvider creates the email/password identity provider.
func NewCredentialsProvider(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	sessionService authService.SessionService,
) IdentityProvider {
	return &credentialsProvider{
		userRepo:        userRepo,
		passwordService: passwordService,
		sessionService:  sessionService,
	}
}

// SignIn verifies the email and password fields and issues a session.
func (p *credentialsProvider) SignIn(
	ctx context.Context,
	provider string,
	fields form.Values,
) (*authDomain.Session, error) {
	if provider != authDomain.ProviderCredentials {
		return nil, authDomain.NewAuthError(authDomain.InvalidProvider, nil)
	}

	email := fields.Get("email")
	password := fields.Get("password")

	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, customValidation.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(minPasswordLength, 0)),
	}.Filter()
	if err != nil {
		return nil, authDomain.NewAuthError(authDomain.CredentialsSignin, nil)
	}

	user, err := p.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrUserNotFound) {
			p.compareUnknownUser(password)
			return nil, authDomain.NewAuthError(authDomain.CredentialsSignin, nil)
		}
		return nil, authDomain.NewAuthError(authDomain.CallbackRouteError, err)
	}

	if !p.passwordService.Compare(password, user.Password) {
		return nil, authDomain.NewAuthError(authDomain.CredentialsSignin, nil)
	}

	session, err := p.sessionService.Issue(user)
	if err != nil {
		return nil, authDomain.NewAuthError(authDomain.CallbackRouteError, err)
	}
	return session, nil
}

func (p *credentialsProvider) compareUnknownUser(password string) {
	p.unknownUserOnce.Do(func() {
		hash, err := p.passwordService.Hash(unknownUserPassword)
		if err == nil {
			p.unknownUserHash = hash
		}
	})
	if p.unknownUserHash != "" {
		_ = p.passwordService.Compare(password, p.unknownUserHash)
	}
}
