package errorx

import "fmt"

// LegacyErrorCode is the finer-grained code set used before codes were
// consolidated into ErrorCode. It is kept only for migrating stored or
// client-supplied values.
type LegacyErrorCode int

const (
	LegacyUnknown LegacyErrorCode = iota
	LegacyInvalidParameter
	LegacyMissingParameter
	LegacyBadFormat
	LegacyOutOfRange
	LegacyAuthFailed
	LegacyPermissionDenied
	LegacySessionExpired
	LegacyTokenInvalid
	LegacyConnectionFailed
	LegacyQueryFailed
	LegacyTransactionFailed
	LegacyConnectionTimeout
	LegacySocketError
	LegacyRequestTimeout
	LegacyFileNotFound
	LegacyFileReadError
	LegacyFileWriteError
	LegacyDiskSpaceLow
	LegacyOutOfMemory
	LegacyConfigMissing
	LegacyJobNotFound
	LegacyJobRunning
	LegacyJobFailed
	LegacyExtractionFailed
	LegacyTransformFailed
	LegacyLoadFailed
)

type legacyEntry struct {
	name   string
	target ErrorCode
}

var legacyTable = map[LegacyErrorCode]legacyEntry{
	LegacyInvalidParameter:  {"INVALID_PARAMETER", CodeInvalidInput},
	LegacyMissingParameter:  {"MISSING_PARAMETER", CodeMissingField},
	LegacyBadFormat:         {"BAD_FORMAT", CodeInvalidFormat},
	LegacyOutOfRange:        {"OUT_OF_RANGE", CodeInvalidRange},
	LegacyAuthFailed:        {"AUTH_FAILED", CodeUnauthorized},
	LegacyPermissionDenied:  {"PERMISSION_DENIED", CodeForbidden},
	LegacySessionExpired:    {"SESSION_EXPIRED", CodeTokenExpired},
	LegacyTokenInvalid:      {"TOKEN_INVALID", CodeInvalidToken},
	LegacyConnectionFailed:  {"CONNECTION_FAILED", CodeDatabaseError},
	LegacyQueryFailed:       {"QUERY_FAILED", CodeDatabaseError},
	LegacyTransactionFailed: {"TRANSACTION_FAILED", CodeDatabaseError},
	LegacyConnectionTimeout: {"CONNECTION_TIMEOUT", CodeNetworkError},
	LegacySocketError:       {"SOCKET_ERROR", CodeNetworkError},
	LegacyRequestTimeout:    {"REQUEST_TIMEOUT", CodeNetworkError},
	LegacyFileNotFound:      {"FILE_NOT_FOUND", CodeFileError},
	LegacyFileReadError:     {"FILE_READ_ERROR", CodeFileError},
	LegacyFileWriteError:    {"FILE_WRITE_ERROR", CodeFileError},
	LegacyDiskSpaceLow:      {"DISK_SPACE_LOW", CodeDiskFull},
	LegacyOutOfMemory:       {"OUT_OF_MEMORY", CodeMemoryError},
	LegacyConfigMissing:     {"CONFIG_MISSING", CodeConfigurationError},
	LegacyJobNotFound:       {"JOB_NOT_FOUND", CodeJobNotFound},
	LegacyJobRunning:        {"JOB_RUNNING", CodeJobAlreadyRunning},
	LegacyJobFailed:         {"JOB_FAILED", CodeJobExecutionFailed},
	LegacyExtractionFailed:  {"EXTRACTION_FAILED", CodeProcessingFailed},
	LegacyTransformFailed:   {"TRANSFORM_FAILED", CodeTransformationFailed},
	LegacyLoadFailed:        {"LOAD_FAILED", CodeProcessingFailed},
}

// consolidation rationale per target code, appended by MigrationInfo
var legacyRationale = map[ErrorCode]string{
	CodeDatabaseError: "connection, query and transaction failures are reported as one retryable database error; " +
		"the failing step belongs in the error context",
	CodeNetworkError: "timeouts and socket failures are reported as one retryable network error",
	CodeFileError:    "read, write and lookup failures are reported as one file error; the path belongs in the error context",
	CodeProcessingFailed: "extraction and load failures are reported as one processing error; " +
		"the pipeline stage belongs in the error context",
}

// String returns the symbolic legacy name.
func (l LegacyErrorCode) String() string {
	if e, ok := legacyTable[l]; ok {
		return e.name
	}
	return "UNKNOWN_LEGACY_ERROR"
}

// MigrateLegacyErrorCode maps a legacy code onto the consolidated code set.
// Several legacy codes share a target; undefined codes map to INTERNAL_ERROR.
func MigrateLegacyErrorCode(legacy LegacyErrorCode) ErrorCode {
	if e, ok := legacyTable[legacy]; ok {
		return e.target
	}
	return CodeInternalError
}

// MigrationInfo describes how legacy is migrated, including the
// consolidation rationale for codes that were merged.
func MigrationInfo(legacy LegacyErrorCode) string {
	target := MigrateLegacyErrorCode(legacy)
	info := fmt.Sprintf("Legacy code %s (%d) migrates to %s (%d): %s",
		legacy, int(legacy), target, int(target), Description(target))

	if _, ok := legacyTable[legacy]; !ok {
		return info + "; unrecognized legacy codes default to INTERNAL_ERROR"
	}
	if why, ok := legacyRationale[target]; ok {
		return info + "; " + why
	}
	return info
}
