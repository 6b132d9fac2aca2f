package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with the custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report json names instead of Go field names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(f.Tag.Get("path"), ",", 2)[0]
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		for tag, fn := range customRules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				logx.Severef("register validation %s failed, err: %v", tag, err)
			}
		}
		instance = v
	})
	return instance
}

// Check validates v's struct tags and reports every violation.
func Check(ctx context.Context, v any) Result {
	err := Get().StructCtx(ctx, v)
	if err == nil {
		return Valid()
	}

	result := Valid()
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		logx.WithContext(ctx).Errorw("struct validation failed", logx.Field("err", err))
		result.Add("", errorx.CodeInvalidInput, "request could not be validated")
		return result
	}

	for _, fe := range fieldErrs {
		result.Add(fe.Field(), codeForTag(fe.Tag()), messageFor(fe))
	}
	return result
}

// Var validates a single value against a tag expression, e.g. "required,email".
func Var(ctx context.Context, field string, value any, tag string) Result {
	err := Get().VarCtx(ctx, value, tag)
	if err == nil {
		return Valid()
	}

	result := Valid()
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Add(field, errorx.CodeInvalidInput, "value could not be validated")
		return result
	}
	for _, fe := range fieldErrs {
		result.Add(field, codeForTag(fe.Tag()), messageFor(fe))
	}
	return result
}

func codeForTag(tag string) errorx.ErrorCode {
	switch tag {
	case "required", "required_if", "required_with", "required_without":
		return errorx.CodeMissingField
	case "min", "max", "len", "gt", "gte", "lt", "lte", "oneof":
		return errorx.CodeInvalidRange
	case "email", "url", "uri", "uuid", "uuid4", "hostname", "ip", "datetime", "alphanum", "identifier", "cron":
		return errorx.CodeInvalidFormat
	case "number", "numeric", "boolean":
		return errorx.CodeInvalidType
	case "safe_text", "safe_path":
		return errorx.CodeConstraintViolation
	default:
		return errorx.CodeInvalidInput
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "identifier":
		return "must start with a letter or underscore and contain only letters, digits, '_' or '-'"
	case "safe_text":
		return "contains disallowed content"
	case "safe_path":
		return "must be a relative path without traversal"
	case "cron":
		return "must be a five-field cron expression"
	default:
		return fmt.Sprintf("failed the '%s' rule", fe.Tag())
	}
}
