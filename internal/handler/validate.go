package handler

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldError describes one invalid input field. Validation failures are
// plain return values, not panics; a 400 response carries the full list
// under "error".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Good enough for the registration form; real deliverability is the mail
// provider's problem.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 6
	minNameLen     = 2
)

// validateCredentials checks email and password and, when requireName is
// set, the display name. It returns nil when everything passes.
func validateCredentials(email, password, name string, requireName bool) []FieldError {
	var errs []FieldError
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email address"})
	}
	if len(password) < minPasswordLen {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if requireName && utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLen {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at least 2 characters"})
	}
	return errs
}
