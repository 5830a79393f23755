// Package usecase implements the customer form action, the email uniqueness check
// and the customer listings.
package usecase

import (
	"context"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/form"
)

// CustomerRepository defines the interface for Customer persistence operations.
type CustomerRepository interface {
	// Create inserts a customer. It returns ErrCustomerAlreadyExists when the email is taken.
	Create(ctx context.Context, customer *customerDomain.Customer) error
	// EmailExists performs a case-sensitive exact match lookup.
	EmailExists(ctx context.Context, email string) (bool, error)
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]*customerDomain.CustomerListItem, error)
	CountFiltered(ctx context.Context, query string) (int, error)
	ListOptions(ctx context.Context) ([]*customerDomain.CustomerOption, error)
}

// CustomerUseCase defines the customer operations.
type CustomerUseCase interface {
	// Create validates the submission, checks the email is free and inserts the customer.
	// The error is non-nil only when storage failed.
	Create(ctx context.Context, values form.Values) (form.Result, error)
	// IsEmailAvailable reports whether no customer uses email. A lookup failure is
	// returned as an error wrapping ErrEmailCheckFailed, never as "available".
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, query string, page int) (*customerDomain.CustomerPage, error)
	Options(ctx context.Context) ([]*customerDomain.CustomerOption, error)
}
