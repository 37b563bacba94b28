package ports

import "context"

// CaptureHost is a command channel to the animation application.
//
// Implementations own exactly one connection and enforce strict
// request/reply alternation: a second Dispatch before the pending reply
// has been consumed by Await is rejected.
type CaptureHost interface {
	// Connect opens the connection. A negative port reuses the last
	// configured port.
	Connect(ctx context.Context, port int) error

	// Disconnect closes the connection. Safe to call when not connected.
	Disconnect() error

	// Connected reports whether a connection is open.
	Connected() bool

	// Port returns the configured port.
	Port() int

	// Send transmits a command and returns its reply.
	Send(ctx context.Context, command string) (string, error)

	// Dispatch transmits a command without reading the reply.
	Dispatch(ctx context.Context, command string) error

	// Await reads the reply to the last dispatched command.
	Await(ctx context.Context) (string, error)
}
