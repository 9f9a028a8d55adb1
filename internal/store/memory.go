package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Simplici0/mako-cost/internal/model"
	"github.com/Simplici0/mako-cost/internal/scenario"
)

// Memory is an in-process scenario store. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	items map[string]scenario.Saved
	now   func() time.Time
}

var _ scenario.Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]scenario.Saved), now: time.Now}
}

func (m *Memory) Load(_ context.Context) ([]scenario.Saved, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]scenario.Saved, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) Save(_ context.Context, name string, inputs model.ParameterSet) (scenario.Saved, error) {
	item, err := newSaved(name, inputs, m.now())
	if err != nil {
		return scenario.Saved{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return item, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return scenario.ErrNotFound
	}
	delete(m.items, id)
	return nil
}
