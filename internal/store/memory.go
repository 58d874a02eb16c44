package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-memory KV used by tests and as a throwaway backend.
type Memory struct {
	mu    sync.Mutex
	items map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]json.RawMessage)}
}

func (m *Memory) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), v...), true, nil
}

func (m *Memory) Save(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append(json.RawMessage(nil), value...)
	return nil
}
