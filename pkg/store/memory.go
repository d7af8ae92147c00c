package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Persistence. Nothing survives the process; it backs
// tests and --ephemeral runs.
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	watchers []chan Event
}

// NewMemory returns an empty in-memory store seeded with the given pairs.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.values[k] = v
	}
	return m
}

func (m *Memory) BasePath() string {
	return ""
}

func (m *Memory) Read(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Write(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = value
	m.notifyLocked(key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.values[key]; ok {
		delete(m.values, key)
		m.notifyLocked(key)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func (m *Memory) Keys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Watch delivers an Event for every Write or Erase until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) notifyLocked(key string) {
	for _, w := range m.watchers {
		select {
		case w <- Event{Key: key}:
		default:
		}
	}
}
