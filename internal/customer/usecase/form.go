package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	customerDomain "github.com/invoicedash/dashboard/internal/customer/domain"
	"github.com/invoicedash/dashboard/internal/form"
	customValidation "github.com/invoicedash/dashboard/internal/validation"
)

// customerForm holds the raw customer fields.
type customerForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newCustomerForm(values form.Values) *customerForm {
	return &customerForm{
		Name:  values.Trimmed("name"),
		Email: values.Get("email"),
	}
}

// ValidateWithContext checks both fields. The email syntax rules run before the
// uniqueness rule, so a malformed email never reaches storage. A lookup failure
// comes back as a validation internal error.
func (f *customerForm) ValidateWithContext(ctx context.Context, emailAvailable validation.RuleWithContextFunc) error {
	return validation.ValidateStructWithContext(ctx, f,
		validation.Field(&f.Email,
			validation.Required.Error(customerDomain.MsgRequired),
			customValidation.Email.Error(customerDomain.MsgInvalidEmail),
			validation.WithContext(emailAvailable),
		),
		validation.Field(&f.Name,
			validation.Required.Error(customerDomain.MsgRequired),
		),
	)
}
