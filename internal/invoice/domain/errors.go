package domain

import (
	"github.com/invoicedash/dashboard/internal/errors"
)

// Invoice-specific error definitions.
var (
	// ErrInvalidInvoiceID indicates an invoice id that is not a UUID.
	ErrInvalidInvoiceID = errors.Wrap(errors.ErrInvalidInput, "invalid invoice id")

	// ErrUnknownCustomer indicates an invoice referencing a customer that does not exist.
	ErrUnknownCustomer = errors.Wrap(errors.ErrNotFound, "unknown customer")
)

// Messages surfaced to the invoice forms.
const (
	MsgSelectCustomer = "Please select a customer!"
	MsgAmount         = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."

	MsgMissingFieldsCreate = "Missing Fields. Failed to Create Invoice."
	MsgMissingFieldsUpdate = "Missing Fields. Failed to Update Invoice."

	MsgDatabaseCreate = "Database Error: Failed to Create Invoice."
	MsgDatabaseUpdate = "Database Error: Failed to Update Invoice."
	MsgDatabaseDelete = "Database Error: Failed to Delete Invoice."

	MsgInvalidID = "Invalid invoice id."
)
