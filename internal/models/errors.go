package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the repository and service layers. Handlers
// translate these into HTTP status codes; nothing here is process-fatal.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("not allowed to modify this resource")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrDuplicate       = errors.New("resource already exists")
)

// StorageError wraps a database failure with the operation and table that
// produced it, so a caller can log something more useful than "sql: ...".
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("storage failure [%s %s]: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("storage failure [%s]: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorage wraps err in a StorageError unless it is nil or one of the
// domain sentinels above, which must pass through untouched for errors.Is.
func WrapStorage(err error, op, table string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrDuplicate) {
		return err
	}
	return &StorageError{Op: op, Table: table, Err: err}
}
