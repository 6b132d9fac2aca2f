package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var (
	// precompiled patterns shared by the tag rules and the string checks
	identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]{0,63}$`)

	cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
)

var customRules = map[string]validator.Func{
	"identifier": validIdentifierValidator,
	"safe_text":  safeTextValidator,
	"safe_path":  safePathValidator,
	"cron":       validCronValidator,
}

// validIdentifierValidator accepts job, table and pipeline names
func validIdentifierValidator(fl validator.FieldLevel) bool {
	return identifierRegex.MatchString(fl.Field().String())
}

// safeTextValidator rejects free text carrying SQL or script injection
func safeTextValidator(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return !ContainsSQLInjection(s) && !ContainsXSS(s)
}

// safePathValidator rejects absolute paths and traversal
func safePathValidator(fl validator.FieldLevel) bool {
	return IsSafePath(fl.Field().String())
}

// validCronValidator accepts five-field cron expressions
func validCronValidator(fl validator.FieldLevel) bool {
	return ValidCron(fl.Field().String())
}
