// Package errors provides centralized error handling for judotimer.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidTabataConfig indicates a tabata configuration with a non-positive
	// work phase, cycle or set count, or a negative rest.
	ErrInvalidTabataConfig = errors.New("invalid tabata configuration")

	// ErrInvalidCountdownConfig indicates a countdown with out-of-range fields
	// or a zero total duration.
	ErrInvalidCountdownConfig = errors.New("invalid countdown configuration")

	// ErrInvalidMode indicates an unknown timer mode.
	ErrInvalidMode = errors.New("invalid timer mode")

	// ErrModeChangeWhileRunning indicates a mode or sequence-mode switch was
	// requested while a session is running. Pause or reset first.
	ErrModeChangeWhileRunning = errors.New("mode change while running")

	// ErrSessionCompleted indicates start was requested on a completed session.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrSequenceEmpty indicates sequence mode was enabled without entries.
	ErrSequenceEmpty = errors.New("sequence is empty")

	// ErrSequenceIndexOutOfRange indicates a caller addressed a sequence entry
	// that does not exist.
	ErrSequenceIndexOutOfRange = errors.New("sequence index out of range")

	// ErrInvalidDeviceCode indicates a device code with the wrong length or
	// characters outside the code alphabet.
	ErrInvalidDeviceCode = errors.New("invalid device code")

	// ErrDeviceNameRequired indicates a link attempt without a device name.
	ErrDeviceNameRequired = errors.New("device name is required")

	// ErrNotLinked indicates an operation that needs a linked device.
	ErrNotLinked = errors.New("device not linked")

	// ErrTransportNotAttached indicates a push without a transport.
	ErrTransportNotAttached = errors.New("sync transport not attached")

	// ErrRecordNotFound indicates the requested record does not exist in the store.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidRecordKey indicates a record key that is empty or could escape
	// the store directory.
	ErrInvalidRecordKey = errors.New("invalid record key")

	// ErrRecordCorrupted indicates a stored record could not be decoded.
	ErrRecordCorrupted = errors.New("record corrupted")

	// ErrStoreClosed indicates a write was queued after the writer was closed.
	ErrStoreClosed = errors.New("store writer closed")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidTimer indicates an invalid timer configuration value.
	ErrConfigInvalidTimer = errors.New("invalid timer configuration")

	// ErrConfigInvalidSync indicates an invalid sync configuration value.
	ErrConfigInvalidSync = errors.New("invalid sync configuration")

	// ErrConfigInvalidStore indicates an invalid store configuration value.
	ErrConfigInvalidStore = errors.New("invalid store configuration")

	// ErrConfigExists indicates config init would overwrite an existing file.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Is reports whether any error in err's tree matches target.
// It re-exports the standard library function so callers importing this
// package under the name errors keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
