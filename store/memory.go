package store

import (
	"context"
	"slices"
	"sync"

	"github.com/etnz/advisor"
)

// Memory keeps snapshots in memory. It is mostly useful for tests and demos.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{snapshots: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, user string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.snapshots[user]
	if !ok {
		return nil, advisor.ErrSnapshotNotFound
	}
	return slices.Clone(data), nil
}

func (m *Memory) Save(ctx context.Context, user string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[user] = slices.Clone(data)
	return nil
}
