package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/user/playblast/pkg/ports"
)

// CaptureHost is a mock implementation of ports.CaptureHost.
// Without overrides it connects successfully and replies to every
// command with Reply.
type CaptureHost struct {
	mu        sync.Mutex
	connected bool
	pending   bool

	PortValue int
	Reply     string

	ConnectFunc  func(ctx context.Context, port int) error
	SendFunc     func(ctx context.Context, command string) (string, error)
	DispatchFunc func(ctx context.Context, command string) error
	AwaitFunc    func(ctx context.Context) (string, error)

	// Recorded calls for verification
	ConnectCalls    []int
	DisconnectCalls int
	Sent            []string // Send and Dispatch, in order
}

func (m *CaptureHost) Connect(ctx context.Context, port int) error {
	m.mu.Lock()
	m.ConnectCalls = append(m.ConnectCalls, port)
	m.mu.Unlock()
	if m.ConnectFunc != nil {
		if err := m.ConnectFunc(ctx, port); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if port >= 0 {
		m.PortValue = port
	}
	m.connected = true
	return nil
}

func (m *CaptureHost) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DisconnectCalls++
	if !m.connected {
		return errors.New("mock: not connected")
	}
	m.connected = false
	m.pending = false
	return nil
}

func (m *CaptureHost) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *CaptureHost) Port() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PortValue
}

func (m *CaptureHost) Send(ctx context.Context, command string) (string, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, command)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, command)
	}
	return m.Reply, nil
}

func (m *CaptureHost) Dispatch(ctx context.Context, command string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, command)
	m.pending = true
	m.mu.Unlock()
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, command)
	}
	return nil
}

func (m *CaptureHost) Await(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.pending = false
	m.mu.Unlock()
	if m.AwaitFunc != nil {
		return m.AwaitFunc(ctx)
	}
	return m.Reply, nil
}

var _ ports.CaptureHost = (*CaptureHost)(nil)
