package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory keeps documents in process memory. Values are stored encoded so
// callers never share state with the store.
type Memory[T any] struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{docs: make(map[string][]byte)}
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	var v T
	m.mu.RLock()
	data, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return v, ErrNotFound
	}
	err := json.Unmarshal(data, &v)
	return v, err
}

func (m *Memory[T]) Put(_ context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[id] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}
