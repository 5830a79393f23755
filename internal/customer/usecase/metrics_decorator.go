package usecase

import (
	"context"
	"time"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/form"
	"github.com/invoicedash/dashboard/internal/metrics"
)

// customerUseCaseWithMetrics decorates CustomerUseCase with metrics instrumentation.
type customerUseCaseWithMetrics struct {
	next    CustomerUseCase
	metrics metrics.BusinessMetrics
}

// NewCustomerUseCaseWithMetrics wraps a CustomerUseCase with metrics recording.
func NewCustomerUseCaseWithMetrics(useCase CustomerUseCase, m metrics.BusinessMetrics) CustomerUseCase {
	return &customerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *customerUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.recordStatus(ctx, operation, start, status)
}

func (c *customerUseCaseWithMetrics) recordStatus(ctx context.Context, operation string, start time.Time, status string) {
	c.metrics.RecordOperation(ctx, "customers", operation, status)
	c.metrics.RecordDuration(ctx, "customers", operation, time.Since(start), status)
}

// Create records metrics for customer creation. Validation failures are labeled "invalid".
func (c *customerUseCaseWithMetrics) Create(ctx context.Context, values form.Values) (form.Result, error) {
	start := time.Now()
	result, err := c.next.Create(ctx, values)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !result.OK():
		status = string(result.Status)
	}
	c.recordStatus(ctx, "customer_create", start, status)

	return result, err
}

// IsEmailAvailable records metrics for email uniqueness lookups.
func (c *customerUseCaseWithMetrics) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	available, err := c.next.IsEmailAvailable(ctx, email)
	c.record(ctx, "customer_email_check", start, err)
	return available, err
}

// List records metrics for customer listings.
func (c *customerUseCaseWithMetrics) List(
	ctx context.Context,
	query string,
	page int,
) (*customerDomain.CustomerPage, error) {
	start := time.Now()
	result, err := c.next.List(ctx, query, page)
	c.record(ctx, "customer_list", start, err)
	return result, err
}

// Options records metrics for customer option listings.
func (c *customerUseCaseWithMetrics) Options(ctx context.Context) ([]*customerDomain.CustomerOption, error) {
	start := time.Now()
	options, err := c.next.Options(ctx)
	c.record(ctx, "customer_options", start, err)
	return options, err
}
