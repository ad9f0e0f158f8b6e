package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/uri"
)

// UUIDNotFoundError is a service domain error for a session that does not exist.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", n.UUID)
}

// BreakpointNotFoundError indicates that no registered breakpoint has the given id.
type BreakpointNotFoundError struct {
	ID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *BreakpointNotFoundError) Error() string {
	return fmt.Sprintf("breakpoint %q not found", n.ID)
}

// NotFoundBreakpoint returns the id and true if BreakpointNotFoundError is part of the error chain.
func NotFoundBreakpoint(e error) (_ uuid.UUID, ok bool) {
	var nf *BreakpointNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.ID, true
}

// TypeNotFoundError indicates that no breakpoint type is registered with the given id.
type TypeNotFoundError struct {
	TypeID string
}

// Error is an implementation of the error interface.
func (n *TypeNotFoundError) Error() string {
	return fmt.Sprintf("breakpoint type %q not found", n.TypeID)
}

// InvalidPlacementError indicates that a breakpoint type cannot be placed on the requested line.
type InvalidPlacementError struct {
	TypeID string
	URI    uri.URI
	Line   int
}

// Error is an implementation of the error interface.
func (n *InvalidPlacementError) Error() string {
	return fmt.Sprintf("breakpoint type %q cannot be placed at %s:%d", n.TypeID, n.URI, n.Line)
}

// NoSessionFoundError indicates that a session cannot be found within the context.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "No session found in context"
}

// BackendUnavailableError indicates that the remote backend could not be reached.
type BackendUnavailableError struct {
	Method string
	Err    error
}

// Error is an implementation of the error interface.
func (n *BackendUnavailableError) Error() string {
	return fmt.Sprintf("backend unavailable for %q: %v", n.Method, n.Err)
}

// Unwrap returns the transport error.
func (n *BackendUnavailableError) Unwrap() error {
	return n.Err
}
