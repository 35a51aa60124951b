package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity violates a database constraint.
	// Check the wrapped error for the constraint details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrStatementInvalid is returned when the database rejects a generated
	// statement, e.g. a WHERE clause referencing a table that is not joined.
	ErrStatementInvalid = errors.New("statement invalid")

	// ErrUnknownAttribute is returned by Model.New when a structure carries
	// an attribute the model does not define.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrRecordNotFound indicates that a record looked up by id does not exist.
	ErrRecordNotFound = fmt.Errorf("%w: record", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The table or entity (e.g., "users", "posts")
	Operation string // The operation that failed (e.g., "count", "load")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
