package service

import "errors"

// Failure categories. Handlers map these to HTTP statuses; services wrap
// them with a human-readable message via the helpers below.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
)

// Error carries a category plus the message shown to the client.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func invalidInput(msg string) error     { return &Error{ErrInvalidInput, msg} }
func permissionDenied(msg string) error { return &Error{ErrPermissionDenied, msg} }
func notFound(msg string) error         { return &Error{ErrNotFound, msg} }
func invalidState(msg string) error     { return &Error{ErrInvalidState, msg} }
func conflict(msg string) error         { return &Error{ErrConflict, msg} }
func unauthenticated(msg string) error  { return &Error{ErrUnauthenticated, msg} }
