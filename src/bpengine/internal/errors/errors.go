package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoTopicOnWireError reports that the request is missing its project topic.
	NoTopicOnWireError = New("topic is required")
	// NoMessageOnWireError reports that the request is missing a message.
	NoMessageOnWireError = New("no message on wire")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	var invalid *InvalidPlacementError
	var mismatch *TopicMismatchError
	var id *InvalidIDError
	return stderr.Is(e, NoTopicOnWireError) || stderr.Is(e, NoMessageOnWireError) || stderr.As(e, &invalid) || stderr.As(e, &mismatch) || stderr.As(e, &id)
}

// IsNotFound reports whether the error names a breakpoint, document, type or session that does not exist.
func IsNotFound(e error) bool {
	var bp *BreakpointNotFoundError
	var doc *DocumentNotFoundError
	var typ *TypeNotFoundError
	var id *UUIDNotFoundError
	return stderr.As(e, &bp) || stderr.As(e, &doc) || stderr.As(e, &typ) || stderr.As(e, &id)
}

// TopicMismatchError indicates that a request was addressed to a different project.
type TopicMismatchError struct {
	Expected string
	Actual   string
}

// Error is an implementation of the error interface.
func (e *TopicMismatchError) Error() string {
	return "request for project " + quote(e.Actual) + " sent to backend of project " + quote(e.Expected)
}

func quote(s string) string {
	return "\"" + s + "\""
}

// InvalidIDError indicates that an identifier received on the wire is not a valid UUID.
type InvalidIDError struct {
	ID string
}

// Error is an implementation of the error interface.
func (e *InvalidIDError) Error() string {
	return "invalid id " + quote(e.ID)
}
