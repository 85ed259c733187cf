package introspect

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrCapabilityDetection is matched by errors caused by a failed
	// version or capability probe.
	ErrCapabilityDetection = errors.New("introspect: schema capability detection failed")

	// ErrUnsupportedDialect is returned for SQL families without a describer.
	ErrUnsupportedDialect = errors.New("introspect: unsupported dialect")

	// ErrInvalidConnectionInfo is returned when a connection URL cannot be
	// turned into connection info.
	ErrInvalidConnectionInfo = errors.New("introspect: invalid connection info")
)

// ConnectivityError reports a probe query that could not be executed.
// The resolver does not retry; retry policy belongs to the caller.
type ConnectivityError struct {
	Op  string // Probe that failed (e.g. "version", "server_version_num").
	Err error  // Underlying driver error.
}

// Error returns the error string.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("introspect: schema capability detection failed (%s): %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ConnectivityError.
// This allows errors.Is(err, ErrCapabilityDetection) to return true.
func (e *ConnectivityError) Is(err error) bool {
	return err == ErrCapabilityDetection
}

// IsConnectivityError returns true if the error is a ConnectivityError.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectivityError
	return errors.As(err, &e)
}

// UnsupportedDialectError is returned for an SQL family the resolver does
// not know.
type UnsupportedDialectError struct {
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("introspect: unsupported dialect %q", e.Dialect)
}

// Is reports whether the target error matches UnsupportedDialectError.
func (e *UnsupportedDialectError) Is(err error) bool {
	return err == ErrUnsupportedDialect
}

// ConnectionInfoError reports a connection URL that cannot be parsed.
type ConnectionInfoError struct {
	Message string
	Cause   error
}

// Error returns the error string.
func (e *ConnectionInfoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("introspect: invalid connection url: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("introspect: invalid connection url: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConnectionInfoError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches ConnectionInfoError.
func (e *ConnectionInfoError) Is(err error) bool {
	return err == ErrInvalidConnectionInfo
}
