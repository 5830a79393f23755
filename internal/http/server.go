// Package http provides the HTTP server, its router and the cross-cutting middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/invoicedash/dashboard/internal/auth/http"
	authUseCase "github.com/invoicedash/dashboard/internal/auth/usecase"
	"github.com/invoicedash/dashboard/internal/config"
	customerHTTP "github.com/invoicedash/dashboard/internal/customer/http"
	invoiceHTTP "github.com/invoicedash/dashboard/internal/invoice/http"
	"github.com/invoicedash/dashboard/internal/metrics"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	cache  Pinger
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// WithCache makes the readiness check include the page cache.
func (s *Server) WithCache(cache Pinger) *Server {
	s.cache = cache
	return s
}

// SetupRouter configures the Gin router with all routes and middleware.
// loginRateLimiter may be nil when login rate limiting is disabled, and
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	invoiceHandler *invoiceHTTP.InvoiceHandler,
	customerHandler *customerHTTP.CustomerHandler,
	authUseCase authUseCase.AuthUseCase,
	loginRateLimiter gin.HandlerFunc,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	login := []gin.HandlerFunc{authHandler.LoginHandler}
	if loginRateLimiter != nil {
		login = append([]gin.HandlerFunc{loginRateLimiter}, login...)
	}
	router.POST(cfg.LoginPath, login...)
	router.POST("/logout", authHandler.LogoutHandler)

	cookie := authHTTP.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure}
	dashboard := router.Group("/dashboard")
	dashboard.Use(authHTTP.SessionMiddleware(authUseCase, cookie, cfg.LoginPath, s.logger))
	{
		dashboard.GET("/session", authHandler.SessionHandler)

		invoices := dashboard.Group("/invoices")
		invoices.GET("", invoiceHandler.ListHandler)
		invoices.POST("", invoiceHandler.CreateHandler)
		invoices.POST("/:id", invoiceHandler.UpdateHandler)
		invoices.POST("/:id/delete", invoiceHandler.DeleteHandler)
		invoices.DELETE("/:id", invoiceHandler.DeleteHandler)

		customers := dashboard.Group("/customers")
		customers.GET("", customerHandler.ListHandler)
		customers.POST("", customerHandler.CreateHandler)
		customers.GET("/options", customerHandler.OptionsHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler answers liveness probes.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler answers readiness probes: the database must be reachable, and the
// page cache too when one is configured.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := gin.H{}

	if s.db == nil || s.db.PingContext(ctx) != nil {
		ready = false
		components["database"] = "error"
	} else {
		components["database"] = "ok"
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			ready = false
			components["cache"] = "error"
		} else {
			components["cache"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
