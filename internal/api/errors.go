package api

import "fmt"

// Error is an application-level failure: the server answered with a
// non-success status. Detail carries the message extracted from the JSON
// error body, or the HTTP status line when no message could be parsed.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Detail)
}

// NetworkError is a transport failure that occurred before any HTTP status
// was known (DNS failure, refused connection, dropped socket).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError is a client-detected precondition failure (missing required
// field, missing file, no active context). Workflows return one before any
// request is issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
