// Package validator checks form input before anything is sent to the API.
//
// Rules are plain values built by constructor functions and evaluated by
// Apply. Every failure carries a translation key and placeholder values so
// the message can be localized after the fact:
//
//	err := validator.Apply(
//		validator.RequiredString("email", form.Email),
//		validator.MinLenString("password", form.Password, 6),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		ve.Translate(translator.T)
//	}
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError describes one failed rule.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

// ValidationErrors is the set of failures of one Apply call.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Field+": "+ve.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one failure.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field.
func (e ValidationErrors) Get(field string) []string {
	var out []string
	for _, ve := range e {
		if ve.Field == field {
			out = append(out, ve.Message)
		}
	}
	return out
}

// First returns the first message for field, or "".
func (e ValidationErrors) First(field string) string {
	if msgs := e.Get(field); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// GetErrors returns the full errors for field.
func (e ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, ve := range e {
		if ve.Field == field {
			out = append(out, ve)
		}
	}
	return out
}

// Translate rewrites each message through fn, in place. Errors without a
// translation key keep their message. A nil fn is a no-op.
func (e ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// Rule is a single check with the error it produces on failure.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates rules in order and returns ValidationErrors when any fail.
// Only the first failure per field is kept.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check() || errs.Has(r.Error.Field) {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Number is any numeric type accepted by the numeric rules.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func newError(field, key, msg string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// RequiredString fails when value is empty or only whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "validation.required", "is required", nil),
	}
}

// MinLenString fails when value has fewer than min runes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: newError(field, "validation.min_length",
			fmt.Sprintf("must be at least %d characters long", min),
			map[string]any{"min": min}),
	}
}

// MaxLenString fails when value has more than max runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field, "validation.max_length",
			fmt.Sprintf("must not exceed %d characters", max),
			map[string]any{"max": max}),
	}
}

// MinNum fails when value is below min.
func MinNum[T Number](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field, "validation.min",
			fmt.Sprintf("must be at least %v", min),
			map[string]any{"min": min}),
	}
}

// MaxNum fails when value is above max.
func MaxNum[T Number](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: newError(field, "validation.max",
			fmt.Sprintf("must not exceed %v", max),
			map[string]any{"max": max}),
	}
}

// Valid fails when ok is false. Use it for checks done before Apply, such as
// parsing a number out of a form field.
func Valid(field string, ok bool, key, msg string) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: newError(field, key, msg, nil),
	}
}
