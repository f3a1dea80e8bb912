package debugger

import "fmt"

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	// ErrUnexpected covers every failure not matched by a more
	// specific kind (malformed URL, body read failure, ...).
	ErrUnexpected ErrorKind = iota

	// ErrTimeout means the request exceeded the configured timeout.
	ErrTimeout

	// ErrConnRefused means the backend did not accept the connection.
	ErrConnRefused

	// ErrHTTPStatus means the backend answered with a non-2xx status.
	ErrHTTPStatus
)

// CallError is the single error type raised by the transport client.
// Exactly one kind applies per failed call.
type CallError struct {
	Kind ErrorKind

	// Status and Body are set for ErrHTTPStatus only.
	Status int
	Body   string

	// Detail is set for ErrUnexpected only.
	Detail string
}

func (e *CallError) Error() string {
	switch e.Kind {
	case ErrTimeout:
		return "request timed out - is x64dbg running?"
	case ErrConnRefused:
		return "cannot connect to x64dbg - is the plugin loaded?"
	case ErrHTTPStatus:
		return fmt.Sprintf("HTTP error %d: %s", e.Status, e.Body)
	default:
		return "unexpected error: " + e.Detail
	}
}
