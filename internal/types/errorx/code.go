// Package errorx provides the error taxonomy of the gateway: a closed set of
// error codes with static metadata, typed exceptions carrying structured
// context and correlation ids, stack capture and context integration.
package errorx

import (
	"maps"
	"net/http"
	"sync"
)

// ErrorCode represents application-specific error codes.
// Codes are banded by category: validation 1000s, auth 2000s,
// system 3000s and business 4000s.
type ErrorCode int

// Validation codes.
const (
	CodeInvalidInput ErrorCode = 1000 + iota
	CodeMissingField
	CodeInvalidFormat
	CodeInvalidRange
	CodeInvalidType
	CodeConstraintViolation
	CodeMalformedRequest
)

// Authentication and authorization codes.
const (
	CodeUnauthorized ErrorCode = 2000 + iota
	CodeForbidden
	CodeTokenExpired
	CodeInvalidToken
	CodeInvalidCredentials
	CodeAccessDenied
)

// System codes.
const (
	CodeDatabaseError ErrorCode = 3000 + iota
	CodeNetworkError
	CodeFileError
	CodeMemoryError
	CodeConfigurationError
	CodeComponentUnavailable
	CodeLockTimeout
	CodeThreadPoolExhausted
	CodeInternalError
	CodeDiskFull
)

// Business codes.
const (
	CodeJobNotFound ErrorCode = 4000 + iota
	CodeJobAlreadyRunning
	CodeInvalidJobState
	CodeJobExecutionFailed
	CodeProcessingFailed
	CodeTransformationFailed
	CodeResourceNotFound
	CodeResourceConflict
	CodeRateLimitExceeded
)

// Categories reported by Category.
const (
	CategoryValidation     = "Validation"
	CategoryAuthentication = "Authentication"
	CategorySystem         = "System"
	CategoryBusiness       = "Business"
	CategoryUnknown        = "Unknown"
)

const (
	unknownDescription = "Unknown error"
	unknownName        = "UNKNOWN_ERROR"
)

// ErrorCodeInfo is the static metadata attached to every ErrorCode.
type ErrorCodeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Retryable   bool   `json:"retryable"`
	HTTPStatus  int    `json:"httpStatus"`
}

// codeTable is built once and never mutated afterwards, so readers need no lock.
var codeTable = sync.OnceValue(func() map[ErrorCode]ErrorCodeInfo {
	v := func(name, desc string) ErrorCodeInfo {
		return ErrorCodeInfo{Name: name, Description: desc, Category: CategoryValidation, HTTPStatus: http.StatusBadRequest}
	}
	a := func(name, desc string, status int) ErrorCodeInfo {
		return ErrorCodeInfo{Name: name, Description: desc, Category: CategoryAuthentication, HTTPStatus: status}
	}
	s := func(name, desc string, retryable bool, status int) ErrorCodeInfo {
		return ErrorCodeInfo{Name: name, Description: desc, Category: CategorySystem, Retryable: retryable, HTTPStatus: status}
	}
	b := func(name, desc string, retryable bool, status int) ErrorCodeInfo {
		return ErrorCodeInfo{Name: name, Description: desc, Category: CategoryBusiness, Retryable: retryable, HTTPStatus: status}
	}

	return map[ErrorCode]ErrorCodeInfo{
		CodeInvalidInput:        v("INVALID_INPUT", "Invalid input provided"),
		CodeMissingField:        v("MISSING_FIELD", "Required field is missing"),
		CodeInvalidFormat:       v("INVALID_FORMAT", "Value has an invalid format"),
		CodeInvalidRange:        v("INVALID_RANGE", "Value is out of the allowed range"),
		CodeInvalidType:         v("INVALID_TYPE", "Value has an invalid type"),
		CodeConstraintViolation: v("CONSTRAINT_VIOLATION", "Value violates a constraint"),
		CodeMalformedRequest:    v("MALFORMED_REQUEST", "Request body could not be parsed"),

		CodeUnauthorized:       a("UNAUTHORIZED", "Authentication is required", http.StatusUnauthorized),
		CodeForbidden:          a("FORBIDDEN", "Operation is not permitted", http.StatusForbidden),
		CodeTokenExpired:       a("TOKEN_EXPIRED", "Authentication token has expired", http.StatusUnauthorized),
		CodeInvalidToken:       a("INVALID_TOKEN", "Authentication token is invalid", http.StatusUnauthorized),
		CodeInvalidCredentials: a("INVALID_CREDENTIALS", "Credentials are invalid", http.StatusUnauthorized),
		CodeAccessDenied:       a("ACCESS_DENIED", "Access to the resource is denied", http.StatusForbidden),

		CodeDatabaseError:        s("DATABASE_ERROR", "Database operation failed", true, http.StatusServiceUnavailable),
		CodeNetworkError:         s("NETWORK_ERROR", "Network operation failed", true, http.StatusServiceUnavailable),
		CodeFileError:            s("FILE_ERROR", "File operation failed", false, http.StatusInternalServerError),
		CodeMemoryError:          s("MEMORY_ERROR", "Memory allocation failed", true, http.StatusServiceUnavailable),
		CodeConfigurationError:   s("CONFIGURATION_ERROR", "Configuration is invalid", false, http.StatusInternalServerError),
		CodeComponentUnavailable: s("COMPONENT_UNAVAILABLE", "Component is unavailable", true, http.StatusServiceUnavailable),
		CodeLockTimeout:          s("LOCK_TIMEOUT", "Timed out acquiring a lock", true, http.StatusServiceUnavailable),
		CodeThreadPoolExhausted:  s("THREAD_POOL_EXHAUSTED", "Worker pool is exhausted", true, http.StatusServiceUnavailable),
		CodeInternalError:        s("INTERNAL_ERROR", "Internal server error", false, http.StatusInternalServerError),
		CodeDiskFull:             s("DISK_FULL", "Disk is full", false, http.StatusInternalServerError),

		CodeJobNotFound:          b("JOB_NOT_FOUND", "Job was not found", false, http.StatusNotFound),
		CodeJobAlreadyRunning:    b("JOB_ALREADY_RUNNING", "Job is already running", false, http.StatusConflict),
		CodeInvalidJobState:      b("INVALID_JOB_STATE", "Job is in an invalid state for the operation", false, http.StatusConflict),
		CodeJobExecutionFailed:   b("JOB_EXECUTION_FAILED", "Job execution failed", false, http.StatusInternalServerError),
		CodeProcessingFailed:     b("PROCESSING_FAILED", "Data processing failed", false, http.StatusInternalServerError),
		CodeTransformationFailed: b("TRANSFORMATION_FAILED", "Data transformation failed", false, http.StatusInternalServerError),
		CodeResourceNotFound:     b("RESOURCE_NOT_FOUND", "Resource was not found", false, http.StatusNotFound),
		CodeResourceConflict:     b("RESOURCE_CONFLICT", "Resource state conflicts with the request", false, http.StatusConflict),
		CodeRateLimitExceeded:    b("RATE_LIMIT_EXCEEDED", "Rate limit exceeded", true, http.StatusTooManyRequests),
	}
})

// AllCodes lists every defined ErrorCode in ascending order.
func AllCodes() []ErrorCode {
	return []ErrorCode{
		CodeInvalidInput, CodeMissingField, CodeInvalidFormat, CodeInvalidRange,
		CodeInvalidType, CodeConstraintViolation, CodeMalformedRequest,

		CodeUnauthorized, CodeForbidden, CodeTokenExpired, CodeInvalidToken,
		CodeInvalidCredentials, CodeAccessDenied,

		CodeDatabaseError, CodeNetworkError, CodeFileError, CodeMemoryError,
		CodeConfigurationError, CodeComponentUnavailable, CodeLockTimeout,
		CodeThreadPoolExhausted, CodeInternalError, CodeDiskFull,

		CodeJobNotFound, CodeJobAlreadyRunning, CodeInvalidJobState,
		CodeJobExecutionFailed, CodeProcessingFailed, CodeTransformationFailed,
		CodeResourceNotFound, CodeResourceConflict, CodeRateLimitExceeded,
	}
}

// CodeInfos returns a copy of the full code table.
func CodeInfos() map[ErrorCode]ErrorCodeInfo {
	return maps.Clone(codeTable())
}

// LookupCode returns the metadata of code and whether it is defined.
func LookupCode(code ErrorCode) (ErrorCodeInfo, bool) {
	info, ok := codeTable()[code]
	return info, ok
}

// Description returns the human-readable description of code,
// or "Unknown error" for undefined codes.
func Description(code ErrorCode) string {
	if info, ok := LookupCode(code); ok {
		return info.Description
	}
	return unknownDescription
}

// Category returns the category of code, or "Unknown".
func Category(code ErrorCode) string {
	if info, ok := LookupCode(code); ok {
		return info.Category
	}
	return CategoryUnknown
}

// IsRetryable reports whether failures with code are transient.
func IsRetryable(code ErrorCode) bool {
	info, ok := LookupCode(code)
	return ok && info.Retryable
}

// DefaultHTTPStatus maps code to its HTTP status, 500 for undefined codes.
func DefaultHTTPStatus(code ErrorCode) int {
	if info, ok := LookupCode(code); ok {
		return info.HTTPStatus
	}
	return http.StatusInternalServerError
}

// String returns the symbolic name of the code, e.g. "INVALID_INPUT",
// or "UNKNOWN_ERROR" for undefined codes.
func (c ErrorCode) String() string {
	if info, ok := LookupCode(c); ok {
		return info.Name
	}
	return unknownName
}

// ParseCode resolves a symbolic name such as "INVALID_INPUT".
func ParseCode(name string) (ErrorCode, bool) {
	for code, info := range codeTable() {
		if info.Name == name {
			return code, true
		}
	}
	return 0, false
}
