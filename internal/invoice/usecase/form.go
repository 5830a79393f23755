package usecase

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/invoicedash/dashboard/internal/form"
	invoiceDomain "github.com/invoicedash/dashboard/internal/invoice/domain"
	customValidation "github.com/invoicedash/dashboard/internal/validation"
)

// invoiceForm holds the raw invoice fields. The id and date are never taken from a submission.
type invoiceForm struct {
	CustomerID string `json:"customerId"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

func newInvoiceForm(values form.Values) *invoiceForm {
	return &invoiceForm{
		CustomerID: values.Trimmed("customerId"),
		Amount:     values.Trimmed("amount"),
		Status:     values.Trimmed("status"),
	}
}

// Validate checks every field and reports all violations at once.
func (f *invoiceForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.CustomerID,
			validation.Required.Error(invoiceDomain.MsgSelectCustomer),
			customValidation.UUID.Error(invoiceDomain.MsgSelectCustomer),
		),
		validation.Field(&f.Amount,
			validation.Required.Error(invoiceDomain.MsgAmount),
			customValidation.PositiveDecimal.Error(invoiceDomain.MsgAmount),
		),
		validation.Field(&f.Status,
			validation.Required.Error(invoiceDomain.MsgSelectStatus),
			validation.NewStringRuleWithError(
				func(s string) bool { return invoiceDomain.Status(s).Valid() },
				validation.NewError("validation_invoice_status", invoiceDomain.MsgSelectStatus),
			),
		),
	)
}

// invoiceFields is a validated and coerced invoice submission.
type invoiceFields struct {
	CustomerID uuid.UUID
	Amount     int64
	Status     invoiceDomain.Status
}

// parseInvoiceForm validates values and coerces them. On failure it returns the
// messages of every invalid field.
func parseInvoiceForm(values form.Values) (*invoiceFields, map[string][]string) {
	f := newInvoiceForm(values)
	if err := f.Validate(); err != nil {
		errs, _ := customValidation.FieldErrors(err)
		return nil, errs
	}

	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return nil, map[string][]string{"amount": {invoiceDomain.MsgAmount}}
	}
	cents, ok := invoiceDomain.ToCents(amount)
	// sub-cent amounts round to nothing
	if !ok || cents <= 0 {
		return nil, map[string][]string{"amount": {invoiceDomain.MsgAmount}}
	}

	return &invoiceFields{
		CustomerID: uuid.MustParse(f.CustomerID),
		Amount:     cents,
		Status:     invoiceDomain.Status(f.Status),
	}, nil
}

// unknownCustomer reports a customer id that passed validation but is not on file.
func unknownCustomer(message string) form.Result {
	errs := customValidation.AddFieldError(nil, "customerId", invoiceDomain.MsgSelectCustomer)
	return form.Invalid(errs, message)
}
