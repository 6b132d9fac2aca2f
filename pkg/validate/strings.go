package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

// StringConstraints describes what ValidateString accepts.
// Zero values disable a check.
type StringConstraints struct {
	Required      bool
	MinLength     int
	MaxLength     int
	Pattern       *regexp.Regexp
	PatternName   string // shown in messages instead of the raw pattern
	AllowedValues []string
	// RejectInjection rejects SQL injection and script payloads.
	RejectInjection bool
}

// ValidateString checks value against c and reports every violation under field.
func ValidateString(field, value string, c StringConstraints) Result {
	result := Valid()

	if value == "" {
		if c.Required {
			result.Add(field, errorx.CodeMissingField, "field is required")
		}
		return result
	}

	if !utf8.ValidString(value) {
		result.Add(field, errorx.CodeInvalidFormat, "must be valid UTF-8")
		return result
	}
	if strings.ContainsRune(value, 0) {
		result.Add(field, errorx.CodeInvalidFormat, "must not contain NUL bytes")
	}

	n := utf8.RuneCountInString(value)
	if c.MinLength > 0 && n < c.MinLength {
		result.Add(field, errorx.CodeInvalidRange, fmt.Sprintf("must be at least %d characters", c.MinLength))
	}
	if c.MaxLength > 0 && n > c.MaxLength {
		result.Add(field, errorx.CodeInvalidRange, fmt.Sprintf("must be at most %d characters", c.MaxLength))
	}

	if c.Pattern != nil && !c.Pattern.MatchString(value) {
		name := c.PatternName
		if name == "" {
			name = c.Pattern.String()
		}
		result.Add(field, errorx.CodeInvalidFormat, fmt.Sprintf("must match %s", name))
	}

	if len(c.AllowedValues) > 0 && !slices.Contains(c.AllowedValues, value) {
		result.Add(field, errorx.CodeInvalidRange, fmt.Sprintf("must be one of [%s]", strings.Join(c.AllowedValues, ", ")))
	}

	if c.RejectInjection {
		if ContainsSQLInjection(value) {
			result.Add(field, errorx.CodeConstraintViolation, "contains an SQL injection pattern")
		}
		if ContainsXSS(value) {
			result.Add(field, errorx.CodeConstraintViolation, "contains a script injection pattern")
		}
	}

	return result
}

// ValidateIdentifier checks job, table and pipeline names.
func ValidateIdentifier(field, value string) Result {
	return ValidateString(field, value, StringConstraints{
		Required:    true,
		MaxLength:   64,
		Pattern:     identifierRegex,
		PatternName: "an identifier",
	})
}

// ValidatePath checks a relative data path.
func ValidatePath(field, value string) Result {
	result := ValidateString(field, value, StringConstraints{Required: true, MaxLength: 4096})
	if result.IsValid && !IsSafePath(value) {
		result.Add(field, errorx.CodeConstraintViolation, "must be a relative path without traversal")
	}
	return result
}
