package product

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid product request")
)

// NotFoundError reports a lookup for an id the store has no record of.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %d was not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError wraps the rule violations of a rejected request.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid product request: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }
