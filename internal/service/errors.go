package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an operation targets a missing document.
	ErrNotFound = errors.New("document not found")
	// ErrNotAvailable is returned when the display has nothing to show.
	ErrNotAvailable = errors.New("no document available")
	// ErrConflict is returned when a stored name is already taken.
	ErrConflict = errors.New("stored name conflict")
	// ErrSweepInProgress is returned when a retention sweep is already running.
	ErrSweepInProgress = errors.New("retention sweep already running")
)

// ValidationError collects per-field messages from one request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// errOrNil returns e as an error only when it holds at least one field.
func (e *ValidationError) errOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func fieldError(field, msg string) error {
	v := &ValidationError{}
	v.add(field, msg)
	return v
}
