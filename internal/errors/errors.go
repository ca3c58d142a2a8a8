// Package errors provides sentinel errors and wrap helpers for pgnfilter.
// It defines the common failure conditions so callers can inspect errors
// with errors.Is() while messages keep their context.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidConfig indicates invalid filter or pipeline configuration,
	// such as a minimum bound above its maximum.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSameFile indicates that source and destination name the same file.
	ErrSameFile = errors.New("source and destination are the same file")

	// ErrUnsupportedFormat indicates an input file whose format is not
	// recognized as PGN or a supported compressed container.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
