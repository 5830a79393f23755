// Package usecase implements the invoice form actions and the invoice listing.
// Form actions validate the raw submission, perform one write and, on success,
// revalidate the invoices listing and point the caller at it.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicedash/dashboard/internal/form"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
)

// InvoiceRepository defines the interface for Invoice persistence operations.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *invoiceDomain.Invoice) error
	// Update writes customer, amount and status of the invoice with the same id.
	// An unknown id is not an error.
	Update(ctx context.Context, invoice *invoiceDomain.Invoice) error
	// Delete removes an invoice. An unknown id is not an error.
	Delete(ctx context.Context, invoiceID uuid.UUID) error
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]*invoiceDomain.InvoiceListItem, error)
	CountFiltered(ctx context.Context, query string) (int, error)
}

// InvoiceUseCase defines the invoice form actions.
//
// Each action returns the result to display beside the form. The error is non-nil only
// when storage failed, in which case the result carries the generic failure message.
type InvoiceUseCase interface {
	Create(ctx context.Context, values form.Values) (form.Result, error)
	Update(ctx context.Context, invoiceID uuid.UUID, values form.Values) (form.Result, error)
	Delete(ctx context.Context, invoiceID uuid.UUID) (form.Result, error)
	// List returns one page of invoices matching query. Pages start at 1.
	List(ctx context.Context, query string, page int) (*invoiceDomain.InvoicePage, error)
}
