package gemini

import (
	"context"
	"sync"
)

// MockClient for testing
type MockClient struct {
	Response string
	Error    error

	mu       sync.Mutex
	requests []Request
	closed   bool
}

func (m *MockClient) Translate(ctx context.Context, request Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	m.mu.Unlock()
	return m.Response, m.Error
}

func (m *MockClient) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Requests returns a copy of every request received.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Closed reports whether Close was called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
