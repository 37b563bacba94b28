package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/ports"
)

const (
	// DefaultPort is the command port the host opens by default.
	DefaultPort = 7221
	// DefaultHost is the loopback address the client dials.
	DefaultHost = "127.0.0.1"
	// MinPort and MaxPort bound the configurable port range.
	MinPort = 1025
	MaxPort = 65535
	// BufferSize is the size of the single read that receives a reply.
	BufferSize = 4096

	DefaultDialTimeout  = 5 * time.Second
	DefaultReplyTimeout = 10 * time.Minute
)

// ValidatePort checks that port lies within [MinPort, MaxPort].
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%w: %d (allowed %d-%d)", ErrInvalidPort, port, MinPort, MaxPort)
	}
	return nil
}

// Options configures a Client.
type Options struct {
	Host        string        // default DefaultHost
	Port        int           // default DefaultPort
	DialTimeout time.Duration // default DefaultDialTimeout

	// ReplyTimeout bounds each reply read. Zero selects
	// DefaultReplyTimeout; a negative value disables the bound so only
	// the context limits the wait.
	ReplyTimeout time.Duration

	Logger ports.Logger
}

// Client owns a single connection to a capture host.
type Client struct {
	mu           sync.Mutex
	host         string
	port         int
	dialTimeout  time.Duration
	replyTimeout time.Duration
	conn         net.Conn
	pending      string // command awaiting its reply
	hasPending   bool
	log          ports.Logger
}

// New creates a disconnected Client.
func New(opts Options) *Client {
	c := &Client{
		host:         opts.Host,
		port:         opts.Port,
		dialTimeout:  opts.DialTimeout,
		replyTimeout: opts.ReplyTimeout,
		log:          opts.Logger,
	}
	if c.host == "" {
		c.host = DefaultHost
	}
	if c.port == 0 {
		c.port = DefaultPort
	}
	if c.dialTimeout <= 0 {
		c.dialTimeout = DefaultDialTimeout
	}
	if c.replyTimeout == 0 {
		c.replyTimeout = DefaultReplyTimeout
	}
	if c.log == nil {
		c.log = logger.NewNoop()
	}
	c.log = c.log.WithComponent("remote")
	return c
}

// Port returns the port used by the next Connect without an explicit port.
func (c *Client) Port() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port
}

// Connected reports whether a connection is open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Connect opens a connection to the host. A port >= 0 replaces the
// configured port; a negative port reuses it. An existing connection is
// closed first, so on any failure, an invalid port included, the client
// is left disconnected.
func (c *Client) Connect(ctx context.Context, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.dropLocked()
	}
	if port >= 0 {
		if err := ValidatePort(port); err != nil {
			return err
		}
		c.port = port
	}

	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	c.log.Debug("Connecting to %s", addr)

	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.log.Error("Failed to connect to port %d: %s", c.port, err)
		return fmt.Errorf("%w: %s: %w", ErrConnectFailed, addr, err)
	}
	c.conn = conn
	c.log.Debug("Connected to %s", addr)
	return nil
}

// Disconnect closes the connection. It returns ErrNotConnected when
// there is nothing to close and is otherwise harmless to repeat.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	err := c.conn.Close()
	c.conn = nil
	c.hasPending = false
	c.pending = ""
	if err != nil {
		c.log.Error("Failed to close connection on port %d: %s", c.port, err)
		return fmt.Errorf("%w: close: %w", ErrTransport, err)
	}
	c.log.Debug("Disconnected from port %d", c.port)
	return nil
}

// Send transmits command and blocks for its reply.
func (c *Client) Send(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dispatchLocked(ctx, command); err != nil {
		return "", err
	}
	return c.awaitLocked(ctx)
}

// Dispatch transmits command without reading the reply. The reply must
// be consumed with Await before another command can be dispatched.
func (c *Client) Dispatch(ctx context.Context, command string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(ctx, command)
}

// Await performs the single bounded read that receives the reply to the
// last dispatched command.
func (c *Client) Await(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaitLocked(ctx)
}

// Do renders cmd and sends it.
func (c *Client) Do(ctx context.Context, cmd Command) (string, error) {
	return Query(ctx, c, cmd)
}

// PlaybackMin returns the start of the host's playback range.
func (c *Client) PlaybackMin(ctx context.Context) (float64, error) {
	return QueryNumber(ctx, c, PlaybackQuery{Bound: BoundMin})
}

// PlaybackMax returns the end of the host's playback range.
func (c *Client) PlaybackMax(ctx context.Context) (float64, error) {
	return QueryNumber(ctx, c, PlaybackQuery{Bound: BoundMax})
}

// PlaybackRange returns both bounds of the host's playback range.
func (c *Client) PlaybackRange(ctx context.Context) (start, end float64, err error) {
	return PlaybackRange(ctx, c)
}

// HostVersion returns the host application's version string.
func (c *Client) HostVersion(ctx context.Context) (string, error) {
	return HostVersion(ctx, c)
}

func (c *Client) dispatchLocked(ctx context.Context, command string) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.hasPending {
		return fmt.Errorf("%w: %q", ErrReplyPending, c.pending)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	} else {
		_ = c.conn.SetWriteDeadline(time.Time{})
	}

	c.log.Debug("Sending command: %s", command)
	if _, err := c.conn.Write([]byte(command)); err != nil {
		c.log.Error("Failed to send command %s: %s", command, err)
		c.dropLocked()
		return fmt.Errorf("%w: send: %w", ErrTransport, err)
	}
	c.pending = command
	c.hasPending = true
	return nil
}

func (c *Client) awaitLocked(ctx context.Context) (string, error) {
	if c.conn == nil {
		return "", ErrNotConnected
	}
	if !c.hasPending {
		return "", ErrNoPendingCommand
	}
	command := c.pending
	c.pending = ""
	c.hasPending = false

	conn := c.conn
	_ = conn.SetReadDeadline(c.readDeadline(ctx))
	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
		close(interrupted)
	})

	buf := make([]byte, BufferSize)
	n, err := conn.Read(buf)
	// The deadline set on cancellation must not outlive this read.
	if !stop() {
		<-interrupted
	}
	if n > 0 {
		reply := CleanReply(buf[:n])
		c.log.Debug("Received reply: %q", reply)
		return reply, nil
	}

	// A failed read leaves the channel out of step with the host, so the
	// connection is not reused.
	c.dropLocked()
	switch {
	case err == nil, errors.Is(err, io.EOF):
		c.log.Error("Connection closed while waiting for reply to %s", command)
		return "", fmt.Errorf("%w: %w", ErrTransport, ErrPeerClosed)
	case ctx.Err() != nil:
		return "", fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case isTimeout(err):
		c.log.Error("Timed out waiting for reply to %s", command)
		return "", fmt.Errorf("%w: %w", ErrTransport, ErrReplyTimeout)
	default:
		c.log.Error("Failed to receive reply to %s: %s", command, err)
		return "", fmt.Errorf("%w: receive: %w", ErrTransport, err)
	}
}

func (c *Client) readDeadline(ctx context.Context) time.Time {
	var deadline time.Time
	if c.replyTimeout > 0 {
		deadline = time.Now().Add(c.replyTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

func (c *Client) dropLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.pending = ""
	c.hasPending = false
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

var _ ports.CaptureHost = (*Client)(nil)
