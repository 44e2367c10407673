package session

import (
	"context"
	"sync"
)

// Memory — потокобезопасное хранилище в памяти процесса.
// Подходит для тестов и короткоживущих процессов.
type Memory struct {
	mu   sync.RWMutex
	pair *TokenPair
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Tokens(_ context.Context) (*TokenPair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pair == nil {
		return nil, ErrNoSession
	}

	cp := *m.pair
	return &cp, nil
}

func (m *Memory) Save(_ context.Context, p *TokenPair) error {
	cp := *p
	cp.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = &cp
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = nil
	return nil
}
