package errorx

import "fmt"

// CreateValidationError builds an INVALID_INPUT exception for a rejected field.
//
// Example:
//
//	err := CreateValidationError("email", "bob@", "missing domain")
//	// Validation failed for field 'email' with value 'bob@': missing domain
func CreateValidationError(field, value, reason string) *ValidationError {
	msg := fmt.Sprintf("Validation failed for field '%s' with value '%s': %s", field, value, reason)
	return NewValidationError(CodeInvalidInput, msg, field, value, nil)
}

// CreateSystemError builds a system exception for a failing component.
func CreateSystemError(code ErrorCode, component, details string) *SystemError {
	msg := fmt.Sprintf("System error in component '%s': %s", component, details)
	return NewSystemError(code, msg, component, nil)
}

// CreateBusinessError builds a business exception for a failed operation.
func CreateBusinessError(code ErrorCode, operation, reason string) *BusinessError {
	msg := fmt.Sprintf("Business rule violated in operation '%s': %s", operation, reason)
	return NewBusinessError(code, msg, operation, nil)
}
