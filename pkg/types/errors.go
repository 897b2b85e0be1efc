package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrVillageNotFound     = fmt.Errorf("village %w", ErrNotFound)
	ErrContactNotFound     = fmt.Errorf("contact %w", ErrNotFound)
	ErrNGONotFound         = fmt.Errorf("ngo %w", ErrNotFound)
	ErrSupportTypeNotFound = fmt.Errorf("support type %w", ErrNotFound)
	ErrScaleNotFound       = fmt.Errorf("scale %w", ErrNotFound)
	ErrRequestNotFound     = fmt.Errorf("request %w", ErrNotFound)
	ErrAssignmentNotFound  = fmt.Errorf("assignment %w", ErrNotFound)
	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
	ErrAdminUserNotFound   = fmt.Errorf("admin user %w", ErrNotFound)

	ErrRequestAlreadyApproved = fmt.Errorf("request already approved: %w", ErrConflict)
	ErrInvalidCredentials     = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrInvalidToken           = fmt.Errorf("invalid token: %w", ErrUnauthorized)
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return fmt.Sprintf("%s: %s", e.Message, strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
