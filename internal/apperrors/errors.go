// Package apperrors defines the application error taxonomy. Handlers and
// services return these; the Fiber error handler maps them to HTTP statuses.
package apperrors

import "fmt"

// ValidationError reports malformed or rejected input. No state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError.
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing referenced record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFound builds a NotFoundError.
func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a unique-constraint conflict that upsert or retry
// logic could not resolve.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict builds a ConflictError.
func NewConflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an underlying persistence failure. The operation is
// assumed not applied; the core never retries these.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorage wraps err as a StorageError for the named operation.
func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
