package database

import (
	"errors"
	"fmt"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

var (
	// ErrNotInitialized is returned when an operation runs before Initialize.
	ErrNotInitialized = errors.New("adapter not initialized")

	// ErrClosed is returned when an operation runs after Shutdown.
	// It also matches ErrNotInitialized.
	ErrClosed = fmt.Errorf("%w: adapter has been shut down", ErrNotInitialized)

	// ErrCapabilityUnsupported is returned when the dialect has no
	// translation for an operation.
	ErrCapabilityUnsupported = errors.New("capability not supported")

	// ErrQueryFailed matches every *QueryError.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrShutdownFailed matches every *ShutdownError.
	ErrShutdownFailed = errors.New("shutdown failed")
)

// QueryError carries a driver error together with the statement that
// produced it. Unwrap returns the driver error untouched.
type QueryError struct {
	Dialect domain.SQLDialect
	Op      string
	Query   string
	Err     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Dialect, e.Op, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrQueryFailed.
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

// ShutdownError is returned when closing the pool fails. The adapter is
// considered shut down regardless.
type ShutdownError struct {
	Dialect domain.SQLDialect
	Err     error
}

// Error implements the error interface.
func (e *ShutdownError) Error() string {
	return fmt.Sprintf("%s shutdown: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying error.
func (e *ShutdownError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrShutdownFailed.
func (e *ShutdownError) Is(target error) bool {
	return target == ErrShutdownFailed
}

// Unsupported builds a capability error for op on dialect d.
func Unsupported(d domain.SQLDialect, op string) error {
	if d == "" {
		return fmt.Errorf("%s: %w", op, ErrCapabilityUnsupported)
	}
	return fmt.Errorf("%s on %s: %w", op, d, ErrCapabilityUnsupported)
}

// IsNotInitialized checks if an error comes from an uninitialized or shut down adapter.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsCapabilityUnsupported checks if an error is a capability error.
func IsCapabilityUnsupported(err error) bool {
	return errors.Is(err, ErrCapabilityUnsupported)
}

// IsQueryFailed checks if an error is a query execution error.
func IsQueryFailed(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}
