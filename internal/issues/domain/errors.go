package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIssueNotFound     = errors.New("issue not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries field-level detail for malformed input.
// Handlers surface it as a 400 with the field map in the body.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

func (e *ValidationError) Addf(field, format string, args ...any) *ValidationError {
	return e.Add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}
