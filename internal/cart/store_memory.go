package cart

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]State)}
}

func (m *MemoryStore) Load(ctx context.Context, userID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.carts[userID]
	if !ok {
		return Empty(), nil
	}
	return Recompute(s), nil
}

func (m *MemoryStore) Update(ctx context.Context, userID string, fn func(State) State) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.carts[userID]
	if !ok {
		current = Empty()
	}
	next := fn(current)
	if len(next.Lines) == 0 {
		delete(m.carts, userID)
		return Empty(), nil
	}
	m.carts[userID] = next
	return Recompute(next), nil
}
