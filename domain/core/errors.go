package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Source errors (fatal: nothing downstream is meaningful)
	ErrMissingSource     = errors.New("source file not found")
	ErrUnparseableSource = errors.New("source file is not parseable as tabular data")
	ErrUnresolvedField   = errors.New("required field has no usable column")

	// Recoverable empty states (flow through aggregation as empty results)
	ErrEmptyDataset = errors.New("dataset is empty after cleaning")

	// Lookup errors
	ErrUnknownField    = errors.New("unknown field")
	ErrSessionNotFound = errors.New("session not found")
)

// Error constructors with context
func NewMissingSourceError(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingSource, path)
}

func NewUnparseableSourceError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnparseableSource, path, cause)
}

func NewUnresolvedFieldError(field string) error {
	return fmt.Errorf("%w: no usable %s column", ErrUnresolvedField, field)
}

func NewUnknownFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}
