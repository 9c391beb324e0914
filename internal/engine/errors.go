package engine

import (
	"errors"
	"fmt"
)

// Kind classifies user-visible pipeline failures. A classified failure
// terminates the current invocation cleanly with exit status 2; diagnostics
// themselves are never errors (finding issues is success with a nonzero exit
// status).
type Kind string

const (
	// KindInvalidRequest covers configuration problems caught before any
	// engine invocation: empty file list, unrecognized enum values.
	KindInvalidRequest Kind = "InvalidRequest"

	// KindEngineUnavailable means no usable PowerShell engine was resolved.
	KindEngineUnavailable Kind = "EngineUnavailable"

	// KindEngineTimeout means the subprocess exceeded its time budget and was
	// killed.
	KindEngineTimeout Kind = "EngineTimeout"

	// KindEngineFailure means the subprocess ran but produced output
	// inconsistent with any known success or diagnostic shape.
	KindEngineFailure Kind = "EngineFailure"

	// KindParseError means the output shape was partially understood but a
	// record could not be converted even with graceful-degradation defaults.
	// Unlike the other kinds this does not terminate the invocation: the
	// record is skipped and surfaces as a report warning. Only a fully
	// unparseable stream aborts, as KindEngineFailure.
	KindParseError Kind = "ParseError"
)

// Error is a classified pipeline failure, printed to stderr as a one-line
// "category: message".
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, err: fmt.Errorf(format, args...)}
}

func wrapError(kind Kind, err error) *Error {
	return &Error{Kind: kind, err: err}
}

// KindOf extracts the failure classification from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
