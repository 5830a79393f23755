// Package integration provides end-to-end integration tests for the dashboard API.
// Tests the sign-in flow and the invoice and customer endpoints against both
// PostgreSQL and MySQL databases.
package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/invoicedash/dashboard/internal/app"
	"github.com/invoicedash/dashboard/internal/config"
	customerDTO "github.com/invoicedash/dashboard/internal/customer/http/dto"
	invoiceDTO "github.com/invoicedash/dashboard/internal/invoice/http/dto"
	"github.com/invoicedash/dashboard/internal/testutil"
)

const (
	testEmail    = "user@nextmail.com"
	testPassword = "123456"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	client    *http.Client
	dbDriver  string
}

// do performs a request without following redirects and returns the response and body.
func (ctx *integrationTestContext) do(
	t *testing.T,
	method, path string,
	form url.Values,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := ctx.client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Users seeded from legacy data carry bcrypt hashes
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	testutil.CreateTestUser(t, db, dbDriver, testEmail, string(hash))

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		DashboardPath:        "/dashboard",
		LoginPath:            "/login",
		InvoicesPath:         "/dashboard/invoices",
		CustomersPath:        "/dashboard/customers",
		ItemsPerPage:         6,
		SessionSecret:        "integration-secret",
		SessionExpiration:    time.Hour,
		SessionCookieName:    "dashboard_session",
		SessionCookieSecure:  false,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{
		Timeout: 10 * time.Second,
		Jar:     jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		client:    client,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

func forEachDriver(t *testing.T, fn func(t *testing.T, ctx *integrationTestContext)) {
	drivers := []struct {
		name string
		skip func(t *testing.T)
	}{
		{name: "postgres", skip: testutil.SkipIfNoPostgres},
		{name: "mysql", skip: testutil.SkipIfNoMySQL},
	}

	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			d.skip(t)

			ctx := setupIntegrationTest(t, d.name)
			defer teardownIntegrationTest(t, ctx)

			fn(t, ctx)
		})
	}
}

func signIn(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	resp, _ := ctx.do(t, http.MethodPost, "/login", url.Values{
		"email":    {testEmail},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	forEachDriver(t, func(t *testing.T, ctx *integrationTestContext) {
		resp, body := ctx.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"healthy"}`, string(body))

		resp, body = ctx.do(t, http.MethodGet, "/ready", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `"ready"`)
	})
}

func TestIntegration_Auth_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	forEachDriver(t, func(t *testing.T, ctx *integrationTestContext) {
		t.Run("dashboard requires a session", func(t *testing.T) {
			resp, _ := ctx.do(t, http.MethodGet, "/dashboard/invoices", nil)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))
		})

		t.Run("wrong password", func(t *testing.T) {
			resp, body := ctx.do(t, http.MethodPost, "/login", url.Values{
				"email":    {testEmail},
				"password": {"wrong-password"},
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.JSONEq(t, `{"message":"Invalid credentials."}`, string(body))
		})

		t.Run("unknown user", func(t *testing.T) {
			resp, body := ctx.do(t, http.MethodPost, "/login", url.Values{
				"email":    {"nobody@nextmail.com"},
				"password": {testPassword},
			})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.JSONEq(t, `{"message":"Invalid credentials."}`, string(body))
		})

		t.Run("sign in and out", func(t *testing.T) {
			signIn(t, ctx)

			resp, _ := ctx.do(t, http.MethodGet, "/dashboard/invoices", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, _ = ctx.do(t, http.MethodPost, "/logout", nil)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

			resp, _ = ctx.do(t, http.MethodGet, "/dashboard/invoices", nil)
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		})
	})
}

func TestIntegration_Dashboard_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	forEachDriver(t, func(t *testing.T, ctx *integrationTestContext) {
		signIn(t, ctx)

		// Create a customer
		resp, _ := ctx.do(t, http.MethodPost, "/dashboard/customers", url.Values{
			"name":  {"  Evil Rabbit  "},
			"email": {"evil@rabbit.com"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard/customers", resp.Header.Get("Location"))

		// A taken email is a field error
		resp, body := ctx.do(t, http.MethodPost, "/dashboard/customers", url.Values{
			"name":  {"Other"},
			"email": {"evil@rabbit.com"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, string(body), `"email"`)

		// The customer is offered in the invoice forms
		resp, body = ctx.do(t, http.MethodGet, "/dashboard/customers/options", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var options struct {
			Data []customerDTO.CustomerOptionResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &options))
		require.Len(t, options.Data, 1)
		assert.Equal(t, "Evil Rabbit", options.Data[0].Name)
		customerID := options.Data[0].ID

		// Invalid invoice submission stores nothing
		resp, body = ctx.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
			"customerId": {customerID},
			"amount":     {"0"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, string(body), "Missing Fields. Failed to Create Invoice.")
		assert.Equal(t, 0, testutil.CountRows(t, ctx.db, "invoices"))

		// Create an invoice
		resp, _ = ctx.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
			"customerId": {customerID},
			"amount":     {"157.95"},
			"status":     {"pending"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard/invoices", resp.Header.Get("Location"))

		// Find it through the search
		resp, body = ctx.do(t, http.MethodGet, "/dashboard/invoices?query=evil", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var invoices invoiceDTO.ListInvoicesResponse
		require.NoError(t, json.Unmarshal(body, &invoices))
		require.Len(t, invoices.Data, 1)
		invoice := invoices.Data[0]
		assert.Equal(t, int64(15795), invoice.Amount)
		assert.Equal(t, "$157.95", invoice.AmountFormatted)
		assert.Equal(t, "pending", invoice.Status)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), invoice.Date)
		assert.Equal(t, 1, invoices.TotalPages)

		// Mark it paid
		resp, _ = ctx.do(t, http.MethodPost, "/dashboard/invoices/"+invoice.ID, url.Values{
			"customerId": {customerID},
			"amount":     {"157.95"},
			"status":     {"paid"},
		})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		// Customer totals reflect the invoice
		resp, body = ctx.do(t, http.MethodGet, "/dashboard/customers?query=rabbit", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var customers customerDTO.ListCustomersResponse
		require.NoError(t, json.Unmarshal(body, &customers))
		require.Len(t, customers.Data, 1)
		assert.Equal(t, 1, customers.Data[0].TotalInvoices)
		assert.Equal(t, "$157.95", customers.Data[0].TotalPaid)
		assert.Equal(t, "$0.00", customers.Data[0].TotalPending)

		// Delete it, twice: an unknown id is not an error
		resp, _ = ctx.do(t, http.MethodDelete, "/dashboard/invoices/"+invoice.ID, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp, _ = ctx.do(t, http.MethodPost, "/dashboard/invoices/"+invoice.ID+"/delete", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, 0, testutil.CountRows(t, ctx.db, "invoices"))
	})
}
