package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoicedash/dashboard/internal/auth/http/dto"
	authUseCase "github.com/invoicedash/dashboard/internal/auth/usecase"
	apperrors "github.com/invoicedash/dashboard/internal/errors"
	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/httputil"
)

// AuthHandler handles sign-in, sign-out and the current session.
type AuthHandler struct {
	authUseCase   authUseCase.AuthUseCase
	cookie        CookieConfig
	dashboardPath string
	loginPath     string
	logger        *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	cookie CookieConfig,
	dashboardPath string,
	loginPath string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:   authUseCase,
		cookie:        cookie,
		dashboardPath: dashboardPath,
		loginPath:     loginPath,
		logger:        logger,
	}
}

// LoginHandler signs in with the submitted email and password.
// POST /login - fields email, password.
// Answers 303 to the dashboard with the session cookie set, or 401 with the message to display.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	values, err := httputil.FormValues(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	session, message, err := h.authUseCase.Authenticate(c.Request.Context(), values)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if message != "" {
		httputil.RespondState(c, http.StatusUnauthorized, form.State{Message: message})
		return
	}

	h.cookie.set(c.Writer, session.Token, session.ExpiresAt)
	c.Redirect(http.StatusSeeOther, h.dashboardPath)
}

// LogoutHandler clears the session cookie.
// POST /logout - answers 303 to the login page.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.cookie.clear(c.Writer)
	c.Redirect(http.StatusSeeOther, h.loginPath)
}

// SessionHandler returns the signed-in user.
// GET /dashboard/session - requires SessionMiddleware.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	session, ok := GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}
