package store

import (
	"context"
	"sync"

	"github.com/matzehuels/signupboard/pkg/schedule"
)

// Memory keeps events in process memory.
type Memory struct {
	mu     sync.RWMutex
	events map[string]*schedule.Event
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{events: make(map[string]*schedule.Event)}
}

func (m *Memory) Get(ctx context.Context, id string) (*schedule.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ev.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, Summarize(ev))
	}
	sortSummaries(out)
	return out, nil
}

func (m *Memory) Put(ctx context.Context, ev *schedule.Event) error {
	if err := prepare(ev); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[ev.ID] = ev.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// Close does nothing for the memory store.
func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
