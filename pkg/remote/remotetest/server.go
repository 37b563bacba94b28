// Package remotetest provides an in-process capture host for tests.
package remotetest

import (
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// HandlerFunc produces the reply for one received command. Returning
// an empty string sends nothing back.
type HandlerFunc func(command string) string

// Server is a loopback TCP server that answers one reply per read, the
// way the host's command port does.
type Server struct {
	Port int

	ln      net.Listener
	handler HandlerFunc
	pad     int

	mu       sync.Mutex
	commands []string
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithNullPadding pads every reply with NUL bytes up to size.
func WithNullPadding(size int) Option {
	return func(s *Server) { s.pad = size }
}

// NewServer starts a server on a free loopback port. It is closed when
// the test finishes.
func NewServer(t testing.TB, handler HandlerFunc, opts ...Option) *Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("remotetest: listen: %v", err)
	}
	s := &Server{
		Port:    ln.Addr().(*net.TCPAddr).Port,
		ln:      ln,
		handler: handler,
		conns:   make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

// Commands returns the commands received so far, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Close stops the server and drops open connections.
func (s *Server) Close() {
	_ = s.ln.Close()
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			cmd := string(buf[:n])
			s.mu.Lock()
			s.commands = append(s.commands, cmd)
			s.mu.Unlock()

			reply := s.handler(cmd)
			if reply != "" {
				out := []byte(reply)
				if len(out) < s.pad {
					out = append(out, make([]byte, s.pad-len(out))...)
				}
				if _, err := conn.Write(out); err != nil {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// ClosedPort returns a loopback port that nothing is listening on.
func ClosedPort(t testing.TB) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("remotetest: listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

// Echo replies with the command text itself.
func Echo(command string) string {
	return command
}

// Host emulates the subset of the host's command language used by a
// capture run.
type Host struct {
	MinTime float64
	MaxTime float64
	Version string

	// OnPlayblast is called with the requested filename before the
	// playblast command is acknowledged.
	OnPlayblast func(filename string)
}

var filenameFlag = regexp.MustCompile(`-filename "((?:[^"\\]|\\.)*)"`)

// Handle implements HandlerFunc.
func (h *Host) Handle(command string) string {
	switch {
	case strings.HasPrefix(command, "playbackOptions") && strings.Contains(command, "-minTime"):
		return formatNumber(h.MinTime) + "\n"
	case strings.HasPrefix(command, "playbackOptions") && strings.Contains(command, "-maxTime"):
		return formatNumber(h.MaxTime) + "\n"
	case strings.HasPrefix(command, "about"):
		if h.Version == "" {
			return "2024\n"
		}
		return h.Version + "\n"
	case strings.HasPrefix(command, "playblast"):
		filename := ""
		if m := filenameFlag.FindStringSubmatch(command); m != nil {
			filename = strings.NewReplacer(`\\`, `\`, `\"`, `"`).Replace(m[1])
		}
		if h.OnPlayblast != nil {
			h.OnPlayblast(filename)
		}
		return filename + "\n"
	default:
		return "\n"
	}
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
