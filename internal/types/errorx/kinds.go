package errorx

import "context"

// Kind tags the exception variant. Kind handlers in the mapper are keyed by it.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindValidation
	KindSystem
	KindBusiness
)

var kindNames = [...]string{
	KindGeneric:    "ETLException",
	KindValidation: "ValidationException",
	KindSystem:     "SystemException",
	KindBusiness:   "BusinessException",
}

// String returns the exception type name, e.g. "ValidationException".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindGeneric]
}

// Context keys filled in by the typed constructors.
const (
	ContextField        = "field"
	ContextInvalidValue = "invalid_value"
	ContextComponent    = "component"
	ContextOperation    = "operation"
)

// ValidationError reports a rejected input value.
type ValidationError struct {
	*ErrorX
	field string
	value string
}

// NewValidationError builds a validation exception. Non-empty field and
// value are also recorded under "field" and "invalid_value".
func NewValidationError(code ErrorCode, msg, field, value string, ctx map[string]string) *ValidationError {
	e := newErrorX(KindValidation, code, msg, ctx, 1)
	e.attrs = []attr{{"field", field}, {"value", value}}
	if field != "" {
		e.ctx.Set(ContextField, field)
	}
	if value != "" {
		e.ctx.Set(ContextInvalidValue, value)
	}
	return &ValidationError{ErrorX: e, field: field, value: value}
}

// Field returns the name of the rejected field.
func (e *ValidationError) Field() string { return e.field }

// Value returns the rejected value.
func (e *ValidationError) Value() string { return e.value }

func (e *ValidationError) WithCause(err error) *ValidationError {
	e.ErrorX.WithCause(err)
	return e
}

func (e *ValidationError) WithContext(ctx context.Context) *ValidationError {
	e.ErrorX.WithContext(ctx)
	return e
}

// SystemError reports an infrastructure failure in a named component.
type SystemError struct {
	*ErrorX
	component string
}

// NewSystemError builds a system exception; a non-empty component is
// recorded under "component".
func NewSystemError(code ErrorCode, msg, component string, ctx map[string]string) *SystemError {
	e := newErrorX(KindSystem, code, msg, ctx, 1)
	e.attrs = []attr{{"component", component}}
	if component != "" {
		e.ctx.Set(ContextComponent, component)
	}
	return &SystemError{ErrorX: e, component: component}
}

// Component returns the failing component.
func (e *SystemError) Component() string { return e.component }

func (e *SystemError) WithCause(err error) *SystemError {
	e.ErrorX.WithCause(err)
	return e
}

func (e *SystemError) WithContext(ctx context.Context) *SystemError {
	e.ErrorX.WithContext(ctx)
	return e
}

// BusinessError reports a violated business rule during an operation.
type BusinessError struct {
	*ErrorX
	operation string
}

// NewBusinessError builds a business exception; a non-empty operation is
// recorded under "operation".
func NewBusinessError(code ErrorCode, msg, operation string, ctx map[string]string) *BusinessError {
	e := newErrorX(KindBusiness, code, msg, ctx, 1)
	e.attrs = []attr{{"operation", operation}}
	if operation != "" {
		e.ctx.Set(ContextOperation, operation)
	}
	return &BusinessError{ErrorX: e, operation: operation}
}

// Operation returns the operation that failed.
func (e *BusinessError) Operation() string { return e.operation }

func (e *BusinessError) WithCause(err error) *BusinessError {
	e.ErrorX.WithCause(err)
	return e
}

func (e *BusinessError) WithContext(ctx context.Context) *BusinessError {
	e.ErrorX.WithContext(ctx)
	return e
}
