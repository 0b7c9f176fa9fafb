// Package validation provides custom validation rules for the application.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/onetimepassgen/internal/errors"
)

var (
	// userNameRegex allows letters, digits and the separators commonly found in logins.
	userNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._@\-]+$`)
)

// WrapValidationError converts jellydator validation errors into a domain ValidationError.
// Errors that are not field errors are wrapped as ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	if fields := FieldErrors(err); fields != nil {
		return apperrors.NewValidationError(fields)
	}

	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// FieldErrors flattens a validation.Errors value into field name to messages.
// Nested errors are keyed with dotted paths. Returns nil if err is not a validation.Errors.
func FieldErrors(err error) map[string][]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}

	result := map[string][]string{}
	flatten("", errs, result)
	return result
}

func flatten(prefix string, errs validation.Errors, result map[string][]string) {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := key
		if prefix != "" {
			field = prefix + "." + key
		}

		err := errs[key]
		if err == nil {
			continue
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(field, nested, result)
			continue
		}

		result[field] = append(result[field], err.Error())
	}
}

// PasswordStrength validates a user password meets minimum security requirements
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}

	if p.RequireUpper && !containsRune(s, unicode.IsUpper) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !containsRune(s, unicode.IsLower) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !containsRune(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	if p.RequireSpecial && !containsRune(s, isSpecial) {
		return validation.NewError(
			"validation_password_special",
			"password must contain at least one special character",
		)
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsRune(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}

// UUID validates that a non-empty string is a canonical UUID.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// UserName validates the characters allowed in a login name.
var UserName = validation.NewStringRuleWithError(
	func(s string) bool {
		return userNameRegex.MatchString(s)
	},
	validation.NewError("validation_user_name", "must contain only letters, digits, '.', '_', '@' or '-'"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
