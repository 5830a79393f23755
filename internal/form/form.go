// Package form defines the values exchanged by form actions: the raw fields of a
// submission and the result state returned for display beside the form.
package form

import (
	"net/url"
	"strings"
)

// Values holds the raw string fields of one form submission.
type Values map[string]string

// FromURLValues keeps the first value of every submitted field.
func FromURLValues(v url.Values) Values {
	values := make(Values, len(v))
	for name, fields := range v {
		if len(fields) > 0 {
			values[name] = fields[0]
		}
	}
	return values
}

// Get returns the raw value of a field, or the empty string when it was not submitted.
func (v Values) Get(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// Trimmed returns the value of a field without surrounding whitespace.
func (v Values) Trimmed(name string) string {
	return strings.TrimSpace(v.Get(name))
}

// State is the result state rendered back beside a form.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Status classifies the outcome of a form action.
type Status string

const (
	// StatusSuccess means the mutation was applied.
	StatusSuccess Status = "success"
	// StatusInvalid means the submission was rejected and nothing was written.
	StatusInvalid Status = "invalid"
	// StatusFailed means storage or a collaborator failed.
	StatusFailed Status = "failed"
)

// Result is what a form action returns: the state to display and the
// navigation the caller should perform. RedirectTo is empty when the caller stays in place.
type Result struct {
	Status     Status
	State      State
	RedirectTo string
}

// Success builds a successful result that navigates to redirectTo (empty to stay in place).
func Success(redirectTo string) Result {
	return Result{Status: StatusSuccess, RedirectTo: redirectTo}
}

// Invalid builds a validation failure result.
func Invalid(errors map[string][]string, message string) Result {
	return Result{
		Status: StatusInvalid,
		State:  State{Errors: errors, Message: message},
	}
}

// Failed builds a result for a failure outside validation.
func Failed(message string) Result {
	return Result{
		Status: StatusFailed,
		State:  State{Message: message},
	}
}

// OK reports whether the action succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
