package errorx

import "errors"

// AsException returns the first exception in err's chain.
func AsException(err error) (Exception, bool) {
	var ex Exception
	if err == nil || !errors.As(err, &ex) {
		return nil, false
	}
	return ex, true
}

// As returns the first error in err's chain of type T, e.g.
//
//	ve, ok := errorx.As[*errorx.ValidationError](err)
func As[T error](err error) (T, bool) {
	var target T
	if err == nil {
		return target, false
	}
	ok := errors.As(err, &target)
	return target, ok
}

// IsValidationError reports whether err's chain holds a ValidationError.
func IsValidationError(err error) bool {
	_, ok := As[*ValidationError](err)
	return ok
}

// IsSystemError reports whether err's chain holds a SystemError.
func IsSystemError(err error) bool {
	_, ok := As[*SystemError](err)
	return ok
}

// IsBusinessError reports whether err's chain holds a BusinessError.
func IsBusinessError(err error) bool {
	_, ok := As[*BusinessError](err)
	return ok
}

// Is checks if an error's chain holds an exception with the specified code.
//
// Example:
//
//	if errorx.Is(err, errorx.CodeJobNotFound) {
//	    // Handle missing job
//	}
func Is(err error, code ErrorCode) bool {
	ex, ok := AsException(err)
	return ok && ex.Code() == code
}

// CodeOf returns the code of the first exception in err's chain,
// or INTERNAL_ERROR when there is none.
func CodeOf(err error) ErrorCode {
	if ex, ok := AsException(err); ok {
		return ex.Code()
	}
	return CodeInternalError
}
