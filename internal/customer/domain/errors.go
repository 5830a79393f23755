package domain

import (
	"github.com/invoicedash/dashboard/internal/errors"
)

// Customer-specific error definitions.
var (
	// ErrCustomerAlreadyExists indicates the email is already used by another customer.
	ErrCustomerAlreadyExists = errors.Wrap(errors.ErrConflict, "customer already exists")

	// ErrEmailCheckFailed indicates the email uniqueness lookup could not be performed.
	ErrEmailCheckFailed = errors.Wrap(errors.ErrUnavailable, "failed to check emails")
)

// Messages surfaced to the customer form.
const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "This is not a valid email."
	MsgEmailTaken   = "There was an error with this email address"

	MsgMissingFieldsCreate = "Missing Fields. Failed to Create Customer."
	MsgDatabaseCreate      = "Database Error: Failed to Create Customer."
	MsgCheckEmails         = "Database Error: Failed to check emails."
)
