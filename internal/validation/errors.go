package validation

import (
	"errors"
	"sort"

	validation "github.com/jellydator/validation"
)

// FieldErrors flattens the per-field errors produced by ValidateStruct into
// form field name -> messages. The field name is taken from the json tag.
// It returns false when err does not carry field errors (nil or an internal error).
func FieldErrors(err error) (map[string][]string, bool) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, false
	}

	out := make(map[string][]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		out[field] = append(out[field], fieldErr.Error())
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// AddFieldError appends message to the messages of field, allocating the map when needed.
func AddFieldError(errs map[string][]string, field, message string) map[string][]string {
	if errs == nil {
		errs = make(map[string][]string)
	}
	errs[field] = append(errs[field], message)
	return errs
}

// Fields returns the sorted field names of errs.
func Fields(errs map[string][]string) []string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// InternalCause returns the error a rule wrapped with NewInternalError.
func InternalCause(err error) (error, bool) {
	var ie validation.InternalError
	if !errors.As(err, &ie) || ie.InternalError() == nil {
		return nil, false
	}
	return ie.InternalError(), true
}
