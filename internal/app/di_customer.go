package app

import (
	"fmt"

	customerHTTP "github.com/invoicedash/dashboard/internal/customer/http"
	customerRepository "github.com/invoicedash/dashboard/internal/customer/repository"
	customerUseCase "github.com/invoicedash/dashboard/internal/customer/usecase"
	"github.com/invoicedash/dashboard/internal/database"
)

// CustomerRepository returns the customer repository instance.
func (c *Container) CustomerRepository() (customerUseCase.CustomerRepository, error) {
	var err error
	c.customerRepoInit.Do(func() {
		c.customerRepo, err = c.initCustomerRepository()
		if err != nil {
			c.initErrors["customerRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["customerRepo"]; exists {
		return nil, storedErr
	}
	return c.customerRepo, nil
}

// CustomerUseCase returns the customer use case instance.
func (c *Container) CustomerUseCase() (customerUseCase.CustomerUseCase, error) {
	var err error
	c.customerUseCaseInit.Do(func() {
		c.customerUseCase, err = c.initCustomerUseCase()
		if err != nil {
			c.initErrors["customerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["customerUseCase"]; exists {
		return nil, storedErr
	}
	return c.customerUseCase, nil
}

// CustomerHandler returns the customer HTTP handler instance.
func (c *Container) CustomerHandler() (*customerHTTP.CustomerHandler, error) {
	var err error
	c.customerHandlerInit.Do(func() {
		c.customerHandler, err = c.initCustomerHandler()
		if err != nil {
			c.initErrors["customerHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["customerHandler"]; exists {
		return nil, storedErr
	}
	return c.customerHandler, nil
}

// initCustomerRepository creates the customer repository based on the database driver.
func (c *Container) initCustomerRepository() (customerUseCase.CustomerRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for customer repository: %w", err)
	}

	switch {
	case database.IsPostgres(c.config.DBDriver):
		return customerRepository.NewPostgreSQLCustomerRepository(db), nil
	case c.config.DBDriver == "mysql":
		return customerRepository.NewMySQLCustomerRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCustomerUseCase creates the customer use case with all its dependencies.
func (c *Container) initCustomerUseCase() (customerUseCase.CustomerUseCase, error) {
	customerRepo, err := c.CustomerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer repository for customer use case: %w", err)
	}

	cache, err := c.PageCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get page cache for customer use case: %w", err)
	}

	baseUseCase := customerUseCase.NewCustomerUseCase(
		customerRepo,
		cache,
		c.config.CustomersPath,
		c.config.ItemsPerPage,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for customer use case: %w", err)
		}
		return customerUseCase.NewCustomerUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCustomerHandler creates the customer HTTP handler with all its dependencies.
func (c *Container) initCustomerHandler() (*customerHTTP.CustomerHandler, error) {
	useCase, err := c.CustomerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer use case for customer handler: %w", err)
	}
	return customerHTTP.NewCustomerHandler(useCase, c.Logger()), nil
}
