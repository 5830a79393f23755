package app

import (
	"fmt"

	"github.com/invoicedash/dashboard/internal/database"
	invoiceHTTP "github.com/invoicedash/dashboard/internal/invoice/http"
	invoiceRepository "github.com/invoicedash/dashboard/internal/invoice/repository"
	invoiceUseCase "github.com/invoicedash/dashboard/internal/invoice/usecase"
)

// InvoiceRepository returns the invoice repository instance.
func (c *Container) InvoiceRepository() (invoiceUseCase.InvoiceRepository, error) {
	var err error
	c.invoiceRepoInit.Do(func() {
		c.invoiceRepo, err = c.initInvoiceRepository()
		if err != nil {
			c.initErrors["invoiceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["invoiceRepo"]; exists {
		return nil, storedErr
	}
	return c.invoiceRepo, nil
}

// InvoiceUseCase returns the invoice use case instance.
func (c *Container) InvoiceUseCase() (invoiceUseCase.InvoiceUseCase, error) {
	var err error
	c.invoiceUseCaseInit.Do(func() {
		c.invoiceUseCase, err = c.initInvoiceUseCase()
		if err != nil {
			c.initErrors["invoiceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["invoiceUseCase"]; exists {
		return nil, storedErr
	}
	return c.invoiceUseCase, nil
}

// InvoiceHandler returns the invoice HTTP handler instance.
func (c *Container) InvoiceHandler() (*invoiceHTTP.InvoiceHandler, error) {
	var err error
	c.invoiceHandlerInit.Do(func() {
		c.invoiceHandler, err = c.initInvoiceHandler()
		if err != nil {
			c.initErrors["invoiceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["invoiceHandler"]; exists {
		return nil, storedErr
	}
	return c.invoiceHandler, nil
}

// initInvoiceRepository creates the invoice repository based on the database driver.
func (c *Container) initInvoiceRepository() (invoiceUseCase.InvoiceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for invoice repository: %w", err)
	}

	switch {
	case database.IsPostgres(c.config.DBDriver):
		return invoiceRepository.NewPostgreSQLInvoiceRepository(db), nil
	case c.config.DBDriver == "mysql":
		return invoiceRepository.NewMySQLInvoiceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initInvoiceUseCase creates the invoice use case with all its dependencies.
func (c *Container) initInvoiceUseCase() (invoiceUseCase.InvoiceUseCase, error) {
	invoiceRepo, err := c.InvoiceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice repository for invoice use case: %w", err)
	}

	cache, err := c.PageCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get page cache for invoice use case: %w", err)
	}

	baseUseCase := invoiceUseCase.NewInvoiceUseCase(
		invoiceRepo,
		cache,
		c.config.InvoicesPath,
		c.config.CustomersPath,
		c.config.ItemsPerPage,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for invoice use case: %w", err)
		}
		return invoiceUseCase.NewInvoiceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initInvoiceHandler creates the invoice HTTP handler with all its dependencies.
func (c *Container) initInvoiceHandler() (*invoiceHTTP.InvoiceHandler, error) {
	useCase, err := c.InvoiceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice use case for invoice handler: %w", err)
	}
	return invoiceHTTP.NewInvoiceHandler(useCase, c.Logger()), nil
}
