package models

import (
	"errors"
	"fmt"
)

// ValidationError reports a local precondition that failed before any
// collaborator was contacted.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// NewValidationError creates a ValidationError for op
func NewValidationError(op, reason string) *ValidationError {
	return &ValidationError{Op: op, Reason: reason}
}

// ExternalCallError reports that a collaborator call failed, either in
// transport or because its response carried an error field.
type ExternalCallError struct {
	Op  string
	Err error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

// NewExternalCallError wraps err as a failure of op
func NewExternalCallError(op string, err error) *ExternalCallError {
	return &ExternalCallError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsExternal reports whether err is (or wraps) an ExternalCallError
func IsExternal(err error) bool {
	var ee *ExternalCallError
	return errors.As(err, &ee)
}
