package engine

import (
	"errors"
	"fmt"
)

// Error kinds for errors.Is checks.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("habit not found")
	ErrStorage    = errors.New("storage error")
)

// ValidationError rejects a draft before anything is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError is returned when an operation names an unknown habit id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("habit %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StorageError wraps a failure of the persistent store.
type StorageError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s habits: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
