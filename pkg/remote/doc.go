// Package remote implements the command channel to a capture host: an
// animation application listening on a local TCP command port.
//
// The protocol has no framing. A command is a MEL statement sent as
// UTF-8 text, and the reply is whatever the host's interpreter
// serializes from evaluating it, delivered in a single bounded read and
// possibly NUL padded. Replies carry no correlation identifier, so the
// client allows exactly one outstanding command at a time.
//
// Trust boundary: the host evaluates any text that reaches its port. The
// port is bound to the loopback interface and is not authenticated, so
// anything able to connect locally can run arbitrary code inside the
// host. Commands built with this package go through the structured
// Command types, which quote string arguments and reject control
// characters so that a value can never terminate the statement it is
// embedded in. Client.Send accepts raw text and does no such checks.
package remote
