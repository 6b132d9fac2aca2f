package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/jsonx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/validate"
)

const (
	internalErrorMsg   = "An internal server error occurred"
	unknownErrorMsg    = "An unknown error occurred"
	validationErrorMsg = "Request validation failed"

	statusError = "error"
)

// ErrorResponseFormat is the standard error body. Field order is the wire order.
type ErrorResponseFormat struct {
	Status        string                `json:"status"`
	Message       string                `json:"message"`
	Code          string                `json:"code"`
	CorrelationID string                `json:"correlationId"`
	Timestamp     string                `json:"timestamp"`
	Context       map[string]string     `json:"context"`
	Details       string                `json:"details,omitempty"`
	Errors        []validate.FieldError `json:"errors,omitempty"`
}

// ToJSON serializes the format. It never fails: an unserializable value
// yields a minimal generic body.
func (f ErrorResponseFormat) ToJSON() string {
	if f.Context == nil {
		f.Context = map[string]string{}
	}
	s, err := jsonx.MarshalToString(f)
	if err != nil {
		return fmt.Sprintf(`{"status":"error","message":%q,"code":%q}`, internalErrorMsg, errorx.CodeInternalError.String())
	}
	return s
}

func formatFor(ex errorx.Exception, conf config.MapperConf) ErrorResponseFormat {
	f := ErrorResponseFormat{
		Status:        statusError,
		Message:       ex.Message(),
		Code:          ex.Code().String(),
		CorrelationID: ex.CorrelationID(),
		Timestamp:     errorx.FormatTimestamp(ex.Timestamp()),
		Context:       ex.Context(),
	}

	var details []string
	if conf.IncludeInternalDetails {
		if cause := ex.Unwrap(); cause != nil {
			details = append(details, "cause: "+cause.Error())
		}
	}
	if conf.IncludeStackTrace {
		details = append(details, ex.FormatStack())
	}
	f.Details = strings.Join(details, "\n")
	return f
}

// genericFormat renders errors that carry no exception.
func genericFormat(code errorx.ErrorCode, message, correlationID string) ErrorResponseFormat {
	return ErrorResponseFormat{
		Status:        statusError,
		Message:       message,
		Code:          code.String(),
		CorrelationID: correlationID,
		Timestamp:     errorx.FormatTimestamp(time.Now()),
		Context:       map[string]string{},
	}
}
