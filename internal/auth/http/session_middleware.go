package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/invoicedash/dashboard/internal/auth/usecase"
)

// SessionMiddleware requires a valid session cookie on the dashboard routes.
//
// Requests without a cookie, or with a malformed, forged or expired token, are
// redirected to loginPath and the stale cookie is cleared. On success the session
// is stored in the request context (see GetSession).
func SessionMiddleware(
	authUseCase authUseCase.AuthUseCase,
	cookie CookieConfig,
	loginPath string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			logger.Debug("session required: missing cookie", slog.String("path", c.Request.URL.Path))
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		session, err := authUseCase.ValidateSession(c.Request.Context(), token)
		if err != nil {
			logger.Debug("session required: invalid token",
				slog.String("path", c.Request.URL.Path),
				slog.Any("error", err))
			cookie.clear(c.Writer)
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))

		c.Next()
	}
}
