package kv

import (
	"sort"
	"sync"
)

// Memory keeps sets in a map. Nothing survives the process.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]string
	closed bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]string)}
}

func (m *Memory) GetSet(key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return clone(m.data[key]), nil
}

func (m *Memory) PutSet(key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if len(values) == 0 {
		delete(m.data, key)
		return nil
	}
	m.data[key] = clone(values)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
