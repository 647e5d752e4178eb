package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a vacancy field that failed validation
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is matching against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError represents a missing resource such as a vacancy file
type NotFoundError struct {
	Resource string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is matching against ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NetworkError wraps a failed outbound request
type NetworkError struct {
	Source     string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	prefix := "request failed"
	if e.Source != "" {
		prefix = e.Source + ": " + prefix
	}
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("%s with status %d", prefix, e.StatusCode)
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is matching against ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// Sentinels for errors.Is checks
var (
	ErrValidation = &ValidationError{}
	ErrNotFound   = &NotFoundError{}
	ErrNetwork    = &NetworkError{}
)

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
