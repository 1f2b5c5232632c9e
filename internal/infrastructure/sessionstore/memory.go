package sessionstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Store for tests and single-node standalone runs.
// Values round-trip through JSON so serialization bugs surface the same
// way they would against Redis.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory { return &Memory{data: map[string][]byte{}} }

func (m *Memory) Put(_ context.Context, key string, v any, _ time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

func (m *Memory) Get(_ context.Context, key string, v any) error {
	m.mu.Lock()
	payload, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(payload, v)
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
