package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Contents are lost when the process exits,
// so it only suits long-running processes such as the HTTP server.
//
// Views returned by Namespace share one backing map; each view's Clear only
// touches its own namespace.
type Memory struct {
	mu        *sync.RWMutex
	spaces    map[string]map[string][]byte
	namespace string
}

// NewMemory returns an empty Memory store scoped to the default namespace.
func NewMemory() *Memory {
	return &Memory{
		mu:     &sync.RWMutex{},
		spaces: make(map[string]map[string][]byte),
	}
}

// Namespace returns a view of m scoped to ns that shares m's contents.
func (m *Memory) Namespace(ns string) *Memory {
	return &Memory{mu: m.mu, spaces: m.spaces, namespace: ns}
}

// Set stores a copy of value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.spaces[m.namespace]
	if !ok {
		entries = make(map[string][]byte)
		m.spaces[m.namespace] = entries
	}
	entries[key] = cp
	return nil
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.spaces[m.namespace][key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

// Remove deletes key.
func (m *Memory) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.spaces[m.namespace], key)
	return nil
}

// Clear deletes every key in this namespace.
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.spaces, m.namespace)
	return nil
}
