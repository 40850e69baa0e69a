package tokenstore

import (
	"context"
	"sync"
)

// InMemory is a Store that keeps slots in process memory only. It is used
// when no database path is configured (tokens then die with the process)
// and in tests.
type InMemory struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{slots: make(map[string]string)}
}

func (s *InMemory) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[key], nil
}

func (s *InMemory) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *InMemory) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
