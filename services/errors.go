package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared by every service. Repositories translate storage
// errors into these so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when an entity does not exist or is hidden from the caller
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor's role or ownership does not allow the action
	ErrForbidden = errors.New("permission denied")

	// ErrUnauthenticated is returned when an operation needs a logged in actor
	ErrUnauthenticated = errors.New("authentication required")

	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a uniqueness constraint could not be satisfied
	ErrConflict = errors.New("conflict")

	// ErrDuplicateSlug is raised by storage when a slug is already taken
	ErrDuplicateSlug = errors.New("slug already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user account is disabled")
)

// ValidationError carries field level messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e as an error only when it holds at least one field.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}
