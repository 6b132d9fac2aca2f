package validate

import (
	"fmt"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

// FieldError is a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Result collects the outcome of one or more validations.
type Result struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Valid returns an empty, successful result.
func Valid() Result {
	return Result{IsValid: true}
}

// Add records a violation and marks the result invalid.
func (r *Result) Add(field string, code errorx.ErrorCode, msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg, Code: code.String()})
}

// Merge folds other into r.
func (r *Result) Merge(other Result) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
}

// Err converts an invalid result into a ValidationError named after the
// first rejected field, with every violation in its context. A valid
// result yields nil.
func (r Result) Err() error {
	if r.IsValid || len(r.Errors) == 0 {
		return nil
	}

	first := r.Errors[0]
	code, ok := errorx.ParseCode(first.Code)
	if !ok {
		code = errorx.CodeInvalidInput
	}

	ex := errorx.NewValidationError(code, fmt.Sprintf("%s: %s", first.Field, first.Message), first.Field, "", nil)
	for i, fe := range r.Errors {
		ex.AddContext(fmt.Sprintf("error.%d.%s", i, fe.Field), fe.Message)
	}
	return ex
}
