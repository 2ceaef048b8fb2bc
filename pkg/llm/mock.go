package llm

import (
	"context"
	"iter"
	"sync"
)

// MockProvider replays scripted chunks. It records every request so tests
// can inspect what reached the completion service.
type MockProvider struct {
	mu       sync.Mutex
	chunks   []string
	err      error
	errAfter int
	requests []Request
}

var _ LLMProvider = (*MockProvider)(nil)

func NewMockProvider(chunks ...string) *MockProvider {
	if len(chunks) == 0 {
		chunks = []string{"# Week 1 - Sample\n\n", "Good day class."}
	}
	return &MockProvider{chunks: chunks, errAfter: -1}
}

// FailAfter makes the stream yield err once n chunks have been sent.
func (m *MockProvider) FailAfter(n int, err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errAfter = n
	m.err = err
	return m
}

func (m *MockProvider) Stream(ctx context.Context, req Request, options ...Option) iter.Seq2[string, error] {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	chunks := append([]string(nil), m.chunks...)
	err, errAfter := m.err, m.errAfter
	m.mu.Unlock()

	return func(yield func(string, error) bool) {
		for i, chunk := range chunks {
			if i == errAfter {
				yield("", err)
				return
			}
			if ctx.Err() != nil {
				yield("", ctx.Err())
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
		if errAfter >= len(chunks) {
			yield("", err)
		}
	}
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
