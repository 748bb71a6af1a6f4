// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"sync"
)

// MockResponse defines a canned result for the mock client.
type MockResponse struct {
	Text string
	Err  error
}

// MockClient is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every request for later assertion.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
	idx       int
}

// Compile-time check that MockClient satisfies the Client interface.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock that returns the given responses in order.
// If no responses are provided, Generate returns an empty string.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{
		responses: responses,
	}
}

// Generate returns the next canned response and records the request.
// It respects context cancellation.
func (m *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return "", nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}

// Calls returns a copy of all requests received by this mock.
func (m *MockClient) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent request and whether there was one.
func (m *MockClient) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.calls) == 0 {
		return Request{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears call history and resets the response index to zero.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
	m.idx = 0
}
