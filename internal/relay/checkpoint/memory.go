package checkpoint

import (
	"context"
	"sync"
)

// Memory is an in-process checkpoint store for tests and single-run tools.
type Memory struct {
	mu  sync.Mutex
	seq int64
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq, nil
}

func (m *Memory) Save(_ context.Context, seq int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq = seq
	return nil
}
