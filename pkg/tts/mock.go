package tts

import (
	"context"
	"sync"
)

// MockEngine records spoken text for tests.
type MockEngine struct {
	mu     sync.Mutex
	spoken []string

	// Err, when set, is returned from every Speak call.
	Err error
}

// Speak records the text.
func (m *MockEngine) Speak(_ context.Context, text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()
	return nil
}

// Spoken returns everything spoken so far.
func (m *MockEngine) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}
