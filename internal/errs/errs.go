// Package errs defines the error kinds shared across the extractor.
// Kinds are plain sentinel errors; callers wrap them with fmt.Errorf("%w: ...")
// and dispatch with errors.Is.
package errs

import "errors"

var (
	// ErrFileOperation covers unreadable sources and unwritable outputs.
	ErrFileOperation = errors.New("file operation failed")

	// ErrInvalidJSON marks an export file that could not be parsed.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrValidation marks malformed user input. Always recoverable:
	// report and re-prompt, never crash the session.
	ErrValidation = errors.New("invalid input")

	// ErrProcessing marks a malformed conversation graph. Recoverable at
	// single-conversation granularity: warn, skip, continue the batch.
	ErrProcessing = errors.New("conversation processing failed")

	// ErrExport marks a failed export at the file or zip level.
	ErrExport = errors.New("export failed")

	// ErrUserExit is a control signal, not a failure. It propagates through
	// nested operations untouched and maps to exit code 0.
	ErrUserExit = errors.New("user exit")
)
