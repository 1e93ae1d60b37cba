package credstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store for tests.
type Memory struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{secrets: make(map[string]string)}
}

// Get retrieves a secret from memory.
func (m *Memory) Get(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.secrets[name]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a secret in memory.
func (m *Memory) Set(ctx context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.secrets[name] = value
	return nil
}
