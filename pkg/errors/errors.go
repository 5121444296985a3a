/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors with stable string codes.
// Codes let callers classify failures (fatal vs degraded-continue)
// without matching on message text.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants.
const (
	ErrCodeInvalidConfig = "INVALID_CONFIG"
	ErrCodeInvalidPolicy = "INVALID_POLICY"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternal      = "INTERNAL"
)

// StructuredError is an error carrying a stable code and an optional
// wrapped cause.
type StructuredError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code, message string) error {
	return &StructuredError{Code: code, Message: message}
}

// Wrap creates a StructuredError wrapping err.
func Wrap(code, message string, err error) error {
	return &StructuredError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of err if it is (or wraps) a StructuredError,
// or ErrCodeInternal otherwise.
func CodeOf(err error) string {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	var se *StructuredError
	return errors.As(err, &se) && se.Code == code
}
