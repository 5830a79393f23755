package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/invoicedash/dashboard/internal/auth/domain"
	authHTTP "github.com/invoicedash/dashboard/internal/auth/http"
	authMocks "github.com/invoicedash/dashboard/internal/auth/usecase/mocks"
	"github.com/invoicedash/dashboard/internal/config"
	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	customerHTTP "github.com/invoicedash/dashboard/internal/customer/http"
	customerMocks "github.com/invoicedash/dashboard/internal/customer/usecase/mocks"
	"github.com/invoicedash/dashboard/internal/form"
	invoiceHTTP "github.com/invoicedash/dashboard/internal/invoice/http"
	invoiceMocks "github.com/invoicedash/dashboard/internal/invoice/usecase/mocks"
	"github.com/invoicedash/dashboard/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, newDiscardLogger())
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	readiness := func(server *Server) (int, map[string]any) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return w.Code, response
	}

	t.Run("NotReady_NilDB", func(t *testing.T) {
		code, response := readiness(createTestServer())

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not_ready", response["status"])
		assert.Equal(t, "error", response["components"].(map[string]any)["database"])
	})

	t.Run("Ready", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, newDiscardLogger()).WithCache(stubPinger{})
		code, response := readiness(server)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ready", response["status"])
		components := response["components"].(map[string]any)
		assert.Equal(t, "ok", components["database"])
		assert.Equal(t, "ok", components["cache"])
	})

	t.Run("NotReady_CacheDown", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, newDiscardLogger()).
			WithCache(stubPinger{err: errors.New("connection refused")})
		code, response := readiness(server)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "error", response["components"].(map[string]any)["cache"])
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(newDiscardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(newDiscardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type routerFixture struct {
	auth     *authMocks.MockAuthUseCase
	invoices *invoiceMocks.MockInvoiceUseCase
	customer *customerMocks.MockCustomerUseCase
	server   *Server
}

func newRouterFixture(t *testing.T, metricsProvider *metrics.Provider) *routerFixture {
	t.Helper()

	cfg := &config.Config{
		LoginPath:         "/login",
		DashboardPath:     "/dashboard",
		SessionCookieName: "dashboard_session",
		MetricsNamespace:  "router_test",
	}
	logger := newDiscardLogger()

	f := &routerFixture{
		auth:     &authMocks.MockAuthUseCase{},
		invoices: &invoiceMocks.MockInvoiceUseCase{},
		customer: &customerMocks.MockCustomerUseCase{},
		server:   createTestServer(),
	}
	cookie := authHTTP.CookieConfig{Name: cfg.SessionCookieName}

	f.server.SetupRouter(
		cfg,
		authHTTP.NewAuthHandler(f.auth, cookie, cfg.DashboardPath, cfg.LoginPath, logger),
		invoiceHTTP.NewInvoiceHandler(f.invoices, logger),
		customerHTTP.NewCustomerHandler(f.customer, logger),
		f.auth,
		nil,
		metricsProvider,
	)

	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.invoices.AssertExpectations(t)
		f.customer.AssertExpectations(t)
	})
	return f
}

func (f *routerFixture) signedIn() {
	f.auth.On("ValidateSession", mock.Anything, "token").
		Return(&authDomain.Session{UserID: uuid.Must(uuid.NewV7())}, nil)
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "dashboard_session", Value: "token"})
	return req
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRouter_DashboardRequiresSession(t *testing.T) {
	f := newRouterFixture(t, nil)

	w := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_Session(t *testing.T) {
	f := newRouterFixture(t, nil)
	userID := uuid.Must(uuid.NewV7())
	f.auth.On("ValidateSession", mock.Anything, "token").
		Return(&authDomain.Session{Token: "token", UserID: userID, Email: "user@nextmail.com"}, nil)

	w := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/session", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"email":"user@nextmail.com"`)
}

func TestRouter_CreateInvoice(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.signedIn()

	f.invoices.On("Create", mock.Anything, form.Values{"customerId": "c1", "amount": "50", "status": "paid"}).
		Return(form.Success("/dashboard/invoices"), nil).
		Once()

	w := httptest.NewRecorder()
	req := formRequest(http.MethodPost, "/dashboard/invoices",
		url.Values{"customerId": {"c1"}, "amount": {"50"}, "status": {"paid"}})
	f.server.GetHandler().ServeHTTP(w, withSession(req))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
}

func TestRouter_DeleteInvoiceRoutes(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/dashboard/invoices/"+id.String()+"/delete", nil),
		httptest.NewRequest(http.MethodDelete, "/dashboard/invoices/"+id.String(), nil),
	} {
		f := newRouterFixture(t, nil)
		f.signedIn()
		f.invoices.On("Delete", mock.Anything, id).Return(form.Success(""), nil).Once()

		w := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(w, withSession(req))

		assert.Equal(t, http.StatusNoContent, w.Code, req.Method)
	}
}

func TestRouter_CustomerOptions(t *testing.T) {
	f := newRouterFixture(t, nil)
	f.signedIn()

	id := uuid.Must(uuid.NewV7())
	f.customer.On("Options", mock.Anything).
		Return([]*customerDomain.CustomerOption{{ID: id, Name: "Amy Burns"}}, nil).
		Once()

	w := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/dashboard/customers/options", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Amy Burns")
}

func TestRouter_Login(t *testing.T) {
	f := newRouterFixture(t, nil)

	f.auth.On("Authenticate", mock.Anything, form.Values{"email": "user@nextmail.com", "password": "bad"}).
		Return(nil, authDomain.MsgInvalidCredentials, nil).
		Once()

	w := httptest.NewRecorder()
	req := formRequest(http.MethodPost, "/login", url.Values{"email": {"user@nextmail.com"}, "password": {"bad"}})
	f.server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials."}`, w.Body.String())
}

func TestRouter_HTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("router_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	f := newRouterFixture(t, provider)

	w := httptest.NewRecorder()
	f.server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "router_test_http_requests_total")
	assert.Contains(t, w.Body.String(), `path="/health"`)
}

func TestRouter_NotFoundAndNoMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t, nil)

	for _, target := range []string{"/nonexistent", "/metrics"} {
		w := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer()
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(context.Background()); err != nil {
			errChan <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, newDiscardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
