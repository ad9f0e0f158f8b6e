package errors

import (
	"fmt"

	"go.lsp.dev/uri"
)

// DocumentNotFoundError indicates that a document is not open.
type DocumentNotFoundError struct {
	URI uri.URI
}

// Error is an implementation of the error interface.
func (n *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("Document %q not found", n.URI)
}

// StaleDocumentError indicates that a document changed while a computation against it was in flight.
type StaleDocumentError struct {
	URI           uri.URI
	ExpectedStamp int64
	ActualStamp   int64
}

// Error is an implementation of the error interface.
func (n *StaleDocumentError) Error() string {
	return fmt.Sprintf("document %q changed during computation. Expected stamp: %d, current stamp: %d", n.URI, n.ExpectedStamp, n.ActualStamp)
}

// DisposedError indicates that a document or component was closed while it was being used.
type DisposedError struct {
	What string
}

// Error is an implementation of the error interface.
func (n *DisposedError) Error() string {
	return fmt.Sprintf("%s is disposed", n.What)
}

// IndexNotReadyError indicates that a breakpoint type cannot answer yet because the project is still being indexed.
type IndexNotReadyError struct {
	TypeID string
}

// Error is an implementation of the error interface.
func (n *IndexNotReadyError) Error() string {
	return fmt.Sprintf("index not ready for breakpoint type %q", n.TypeID)
}
