package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/form"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	"github.com/invoicedash/dashboard/internal/metrics"
)

// invoiceUseCaseWithMetrics decorates InvoiceUseCase with metrics instrumentation.
type invoiceUseCaseWithMetrics struct {
	next    InvoiceUseCase
	metrics metrics.BusinessMetrics
}

// NewInvoiceUseCaseWithMetrics wraps an InvoiceUseCase with metrics recording.
func NewInvoiceUseCaseWithMetrics(useCase InvoiceUseCase, m metrics.BusinessMetrics) InvoiceUseCase {
	return &invoiceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// resultStatus labels a form action: success, invalid or error.
func resultStatus(result form.Result, err error) string {
	if err != nil {
		return "error"
	}
	if !result.OK() {
		return string(result.Status)
	}
	return "success"
}

func (i *invoiceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, status string) {
	i.metrics.RecordOperation(ctx, "invoices", operation, status)
	i.metrics.RecordDuration(ctx, "invoices", operation, time.Since(start), status)
}

// Create records metrics for invoice creation.
func (i *invoiceUseCaseWithMetrics) Create(ctx context.Context, values form.Values) (form.Result, error) {
	start := time.Now()
	result, err := i.next.Create(ctx, values)
	i.record(ctx, "invoice_create", start, resultStatus(result, err))
	return result, err
}

// Update records metrics for invoice updates.
func (i *invoiceUseCaseWithMetrics) Update(
	ctx context.Context,
	invoiceID uuid.UUID,
	values form.Values,
) (form.Result, error) {
	start := time.Now()
	result, err := i.next.Update(ctx, invoiceID, values)
	i.record(ctx, "invoice_update", start, resultStatus(result, err))
	return result, err
}

// Delete records metrics for invoice deletion.
func (i *invoiceUseCaseWithMetrics) Delete(ctx context.Context, invoiceID uuid.UUID) (form.Result, error) {
	start := time.Now()
	result, err := i.next.Delete(ctx, invoiceID)
	i.record(ctx, "invoice_delete", start, resultStatus(result, err))
	return result, err
}

// List records metrics for invoice listings.
func (i *invoiceUseCaseWithMetrics) List(
	ctx context.Context,
	query string,
	page int,
) (*invoiceDomain.InvoicePage, error) {
	start := time.Now()
	result, err := i.next.List(ctx, query, page)

	status := "success"
	if err != nil {
		status = "error"
	}
	i.record(ctx, "invoice_list", start, status)

	return result, err
}
