// Package form implements the per-endpoint validation middleware. Each
// endpoint declares an ordered list of field rules; the rules accumulate
// errors, and a final check either re-renders the submitted form with the
// errors and the sticky field values (HTTP 400) or stores the parsed form
// in the request context and calls the next handler. Validation always
// runs before the auth gates reach any mutating controller logic.
package form

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/camdenmotors/dealerweb/internal/repository"
)

// FieldError is a single validation failure attached to a named field.
type FieldError struct {
	Field   string
	Message string
}

// Errors accumulates field errors in rule order.
type Errors []FieldError

// Add appends an error for the given field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Any reports whether at least one rule failed.
func (e Errors) Any() bool { return len(e) > 0 }

// ContextKey is the echo context key under which a successfully parsed
// form is stored for the controller.
const ContextKey = "form"

// Forms bundles the repositories the uniqueness and existence rules need.
// It is constructed once at startup with the injected repository handles.
type Forms struct {
	Accounts        *repository.AccountRepo
	Classifications *repository.ClassificationRepo
	Inventory       *repository.InventoryRepo
	Reviews         *repository.ReviewRepo
}

// New constructs the form middleware bundle.
func New(accounts *repository.AccountRepo, classifications *repository.ClassificationRepo,
	inventory *repository.InventoryRepo, reviews *repository.ReviewRepo) *Forms {
	return &Forms{
		Accounts:        accounts,
		Classifications: classifications,
		Inventory:       inventory,
		Reviews:         reviews,
	}
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alnumPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// required trims the value and records an error when nothing remains.
// It returns the trimmed value so later rules and sticky re-renders see
// the same normalization.
func required(errs *Errors, field, label, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		errs.Add(field, label+" is required.")
	}
	return v
}

// checkEmail validates the address format. An empty value is left to the
// required rule.
func checkEmail(errs *Errors, field, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		errs.Add(field, "A valid email is required.")
	}
}

// checkAlnum enforces the classification-name character set: letters and
// digits only, no spaces or punctuation.
func checkAlnum(errs *Errors, field, label, value string) {
	if value != "" && !alnumPattern.MatchString(value) {
		errs.Add(field, label+" must contain only letters and numbers (no spaces or special characters).")
	}
}

// checkPassword enforces the password policy: at least 12 characters with
// an upper-case letter, a lower-case letter, a digit and a symbol, and no
// whitespace. Go's regexp has no lookahead, so the classes are scanned
// directly.
func checkPassword(errs *Errors, field, value string) {
	if value == "" {
		errs.Add(field, "Password is required.")
		return
	}
	var upper, lower, digit, symbol, space bool
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if len(value) < 12 || !upper || !lower || !digit || !symbol || space {
		errs.Add(field, "Password does not meet requirements.")
	}
}
