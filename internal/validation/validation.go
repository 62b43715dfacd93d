// Package validation holds the shared input-format rules for registration
// and login. All checks are pure functions of their input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?|~` + "`"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// FieldError reports which field of a request failed validation and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Username checks that a username is non-empty after trimming and contains
// only alphanumeric characters and underscores.
func Username(username string) *FieldError {
	if strings.TrimSpace(username) == "" {
		return &FieldError{Field: "username", Reason: "must not be empty"}
	}
	if !usernameRegex.MatchString(username) {
		return &FieldError{Field: "username", Reason: "may only contain letters, digits and underscores"}
	}
	return nil
}

// Email checks that an email is non-empty and has a local@domain.tld shape.
// This is a format gate, not RFC 5322 conformance.
func Email(email string) *FieldError {
	if email == "" {
		return &FieldError{Field: "email", Reason: "must not be empty"}
	}
	if !emailRegex.MatchString(email) {
		return &FieldError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

// Password enforces the registration password policy: at least
// MinPasswordLength characters with one uppercase letter, one lowercase
// letter, one digit and one symbol.
func Password(password string) *FieldError {
	if len(password) < MinPasswordLength {
		return &FieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters long", MinPasswordLength)}
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return &FieldError{Field: "password", Reason: "must contain an uppercase letter"}
	case !hasLower:
		return &FieldError{Field: "password", Reason: "must contain a lowercase letter"}
	case !hasDigit:
		return &FieldError{Field: "password", Reason: "must contain a digit"}
	case !hasSymbol:
		return &FieldError{Field: "password", Reason: "must contain a symbol"}
	}
	return nil
}
