package errorx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateLegacyErrorCode(t *testing.T) {
	t.Run("database codes collapse", func(t *testing.T) {
		assert.Equal(t, CodeDatabaseError, MigrateLegacyErrorCode(LegacyQueryFailed))
		assert.Equal(t, CodeDatabaseError, MigrateLegacyErrorCode(LegacyTransactionFailed))
		assert.Equal(t, CodeDatabaseError, MigrateLegacyErrorCode(LegacyConnectionFailed))
	})

	t.Run("network and file codes collapse", func(t *testing.T) {
		for _, l := range []LegacyErrorCode{LegacyConnectionTimeout, LegacySocketError, LegacyRequestTimeout} {
			assert.Equal(t, CodeNetworkError, MigrateLegacyErrorCode(l), l.String())
		}
		for _, l := range []LegacyErrorCode{LegacyFileNotFound, LegacyFileReadError, LegacyFileWriteError} {
			assert.Equal(t, CodeFileError, MigrateLegacyErrorCode(l), l.String())
		}
	})

	t.Run("one to one codes", func(t *testing.T) {
		assert.Equal(t, CodeDiskFull, MigrateLegacyErrorCode(LegacyDiskSpaceLow))
		assert.Equal(t, CodeJobAlreadyRunning, MigrateLegacyErrorCode(LegacyJobRunning))
		assert.Equal(t, CodeTokenExpired, MigrateLegacyErrorCode(LegacySessionExpired))
	})

	t.Run("unknown defaults to internal error", func(t *testing.T) {
		assert.Equal(t, CodeInternalError, MigrateLegacyErrorCode(LegacyUnknown))
		assert.Equal(t, CodeInternalError, MigrateLegacyErrorCode(LegacyErrorCode(999)))
	})

	t.Run("every target is a defined code", func(t *testing.T) {
		for l := range legacyTable {
			_, ok := LookupCode(MigrateLegacyErrorCode(l))
			assert.True(t, ok, l.String())
		}
	})
}

func TestMigrationInfo(t *testing.T) {
	info := MigrationInfo(LegacyQueryFailed)
	assert.Contains(t, info, "QUERY_FAILED")
	assert.Contains(t, info, "DATABASE_ERROR")
	assert.Contains(t, info, "connection, query and transaction failures")

	plain := MigrationInfo(LegacyJobNotFound)
	assert.Contains(t, plain, "JOB_NOT_FOUND")
	assert.NotContains(t, plain, ";")

	unknown := MigrationInfo(LegacyErrorCode(999))
	assert.Contains(t, unknown, "UNKNOWN_LEGACY_ERROR")
	assert.Contains(t, unknown, "INTERNAL_ERROR")
}
