//go:generate mockgen -source=$GOFILE -destination=./mock/logger_mock.go -package=mock
package mapper

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type Severity uint8

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "error"
	}
}

// Logger receives one entry per mapped error.
type Logger interface {
	Log(ctx context.Context, correlationID string, severity Severity, operation, message string)
}

type logxLogger struct{}

// NewLogxLogger returns the default Logger writing through logx.
func NewLogxLogger() Logger {
	return logxLogger{}
}

func (logxLogger) Log(ctx context.Context, correlationID string, severity Severity, operation, message string) {
	fields := []logx.LogField{
		logx.Field("correlation_id", correlationID),
		logx.Field("operation", operation),
		logx.Field("severity", severity.String()),
	}

	// logx has no warn level, warnings go out as info tagged by severity
	l := logx.WithContext(ctx)
	switch severity {
	case SeverityDebug:
		l.Debugw(message, fields...)
	case SeverityInfo, SeverityWarn:
		l.Infow(message, fields...)
	default:
		l.Errorw(message, fields...)
	}
}

// severityOf ranks exceptions for logging: client mistakes are info,
// business failures warn, system failures error.
func severityOf(ex errorx.Exception) Severity {
	switch errorx.Category(ex.Code()) {
	case errorx.CategoryValidation, errorx.CategoryAuthentication:
		return SeverityInfo
	case errorx.CategoryBusiness:
		if errorx.DefaultHTTPStatus(ex.Code()) >= 500 {
			return SeverityError
		}
		return SeverityWarn
	default:
		return SeverityError
	}
}
