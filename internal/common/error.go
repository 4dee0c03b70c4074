// Package common defines shared sentinel errors used across the service and
// HTTP layers of the flashcards API. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Auth errors (invalid, malformed or expired credential).
	ErrInvalidToken = errors.New("invalid token")
)

// FieldErrors carries per-field validation messages, keyed by the JSON field
// name. It is both an error value and the payload of a 422 response.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Add appends a message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}
