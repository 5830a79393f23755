package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/invoicedash/dashboard/internal/auth/http"
	authRepository "github.com/invoicedash/dashboard/internal/auth/repository"
	authService "github.com/invoicedash/dashboard/internal/auth/service"
	authUseCase "github.com/invoicedash/dashboard/internal/auth/usecase"
	"github.com/invoicedash/dashboard/internal/database"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// SessionService returns the session token service.
func (c *Container) SessionService() (authService.SessionService, error) {
	var err error
	c.sessionServiceInit.Do(func() {
		c.sessionService, err = c.initSessionService()
		if err != nil {
			c.initErrors["sessionService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionService"]; exists {
		return nil, storedErr
	}
	return c.sessionService, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// IdentityProvider returns the credentials identity provider.
func (c *Container) IdentityProvider() (authUseCase.IdentityProvider, error) {
	var err error
	c.identityProviderInit.Do(func() {
		c.identityProvider, err = c.initIdentityProvider()
		if err != nil {
			c.initErrors["identityProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityProvider"]; exists {
		return nil, storedErr
	}
	return c.identityProvider, nil
}

// AuthUseCase returns the auth use case instance.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the auth HTTP handler instance.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initSessionService creates the session service. A signing secret is mandatory.
func (c *Container) initSessionService() (authService.SessionService, error) {
	if c.config.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}
	return authService.NewSessionService(c.config.SessionSecret, c.config.SessionExpiration), nil
}

// initUserRepository creates the user repository based on the database driver.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch {
	case database.IsPostgres(c.config.DBDriver):
		return authRepository.NewPostgreSQLUserRepository(db), nil
	case c.config.DBDriver == "mysql":
		return authRepository.NewMySQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIdentityProvider creates the email and password identity provider.
func (c *Container) initIdentityProvider() (authUseCase.IdentityProvider, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for identity provider: %w", err)
	}

	sessionService, err := c.SessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for identity provider: %w", err)
	}

	return authUseCase.NewCredentialsProvider(userRepo, c.PasswordService(), sessionService), nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	provider, err := c.IdentityProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity provider for auth use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	sessionService, err := c.SessionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session service for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(
		provider,
		userRepo,
		c.PasswordService(),
		sessionService,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthHandler creates the auth HTTP handler with all its dependencies.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	cookie := authHTTP.CookieConfig{
		Name:   c.config.SessionCookieName,
		Secure: c.config.SessionCookieSecure,
	}

	return authHTTP.NewAuthHandler(
		useCase,
		cookie,
		c.config.DashboardPath,
		c.config.LoginPath,
		c.Logger(),
	), nil
}

// initLoginRateLimiter returns the per-IP login limiter, or nil when it is disabled.
// Its cleanup goroutine stops on Shutdown.
func (c *Container) initLoginRateLimiter() gin.HandlerFunc {
	if !c.config.RateLimitLoginEnabled {
		return nil
	}
	return authHTTP.LoginRateLimitMiddleware(
		c.backgroundCtx,
		c.config.RateLimitLoginRequestsPerSec,
		c.config.RateLimitLoginBurst,
		c.Logger(),
	)
}
