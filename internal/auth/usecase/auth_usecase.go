package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	authService "github.com/invoicedash/dashboard/internal/auth/service"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	"github.com/invoicedash/dashboard/internal/form"
	customValidation "github.com/invoicedash/dashboard/internal/validation"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	provider        IdentityProvider
	userRepo        UserRepository
	passwordService authService.PasswordService
	sessionService  authService.SessionService
	logger          *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	provider IdentityProvider,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	sessionService authService.SessionService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		provider:        provider,
		userRepo:        userRepo,
		passwordService: passwordService,
		sessionService:  sessionService,
		logger:          logger,
	}
}

// Authenticate forwards the submitted fields to the credentials provider and maps
// sign-in failures to the login form message.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	fields form.Values,
) (*authDomain.Session, string, error) {
	session, err := a.provider.SignIn(ctx, authDomain.ProviderCredentials, fields)
	if err == nil {
		return session, "", nil
	}

	var authErr *authDomain.AuthError
	if !apperrors.As(err, &authErr) {
		return nil, "", err
	}

	a.logger.Info("sign in failed",
		slog.String("type", string(authErr.Type)),
		slog.Any("error", err))

	return nil, authErr.Message(), nil
}

// ValidateSession verifies token and returns its session.
func (a *authUseCase) ValidateSession(_ context.Context, token string) (*authDomain.Session, error) {
	if token == "" {
		return nil, authDomain.ErrInvalidSession
	}
	return a.sessionService.Parse(token)
}

// CreateUser validates input, hashes the password and stores the user.
func (a *authUseCase) CreateUser(
	ctx context.Context,
	input *authDomain.CreateUserInput,
) (*authDomain.User, error) {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&input.Email, validation.Required, customValidation.Email),
		validation.Field(&input.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: minPasswordLength},
		),
	)
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	hashedPassword, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &authDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
	}

	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
