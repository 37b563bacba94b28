package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when an operation needs an open connection.
	ErrNotConnected = errors.New("remote: not connected")

	// ErrInvalidPort is returned for ports outside the allowed range.
	ErrInvalidPort = errors.New("remote: invalid port")

	// ErrConnectFailed is returned when the host refuses or cannot be reached.
	ErrConnectFailed = errors.New("remote: connect failed")

	// ErrTransport is returned when a command or reply could not be transferred.
	ErrTransport = errors.New("remote: transport failure")

	// ErrPeerClosed is returned when the host closes the connection mid-call.
	ErrPeerClosed = errors.New("remote: connection closed by host")

	// ErrReplyTimeout is returned when no reply arrives within the reply timeout.
	ErrReplyTimeout = errors.New("remote: reply timed out")

	// ErrReplyPending is returned when a command is dispatched before the
	// reply to the previous one has been consumed.
	ErrReplyPending = errors.New("remote: previous reply not consumed")

	// ErrNoPendingCommand is returned by Await when nothing was dispatched.
	ErrNoPendingCommand = errors.New("remote: no command awaiting a reply")

	// ErrMalformedReply is returned when a reply does not have the expected shape.
	ErrMalformedReply = errors.New("remote: malformed reply")

	// ErrEmptyReply is the cause of a ParseError for a blank reply.
	ErrEmptyReply = errors.New("empty reply")

	// ErrUnsafeArgument is returned when a command argument cannot be
	// serialized safely.
	ErrUnsafeArgument = errors.New("remote: unsafe command argument")

	// ErrInvalidCommand is returned when a command has out-of-range parameters.
	ErrInvalidCommand = errors.New("remote: invalid command")
)

// ParseError reports a reply that could not be parsed.
type ParseError struct {
	Command string
	Reply   string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("remote: malformed reply %q to %q: %v", e.Reply, e.Command, e.Err)
	}
	return fmt.Sprintf("remote: malformed reply %q: %v", e.Reply, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrMalformedReply.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedReply
}
