package apicache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	val     []byte
	tags    []Tag
	expires time.Time
}

// Memory is an in-process Cache guarded by a single mutex.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	byTag   map[Tag]map[string]struct{}
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		byTag:   make(map[Tag]map[string]struct{}),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.After(m.now()) {
		m.removeLocked(key)
		return nil, false, nil
	}
	return e.val, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, tags []Tag, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(key)
	m.entries[key] = memEntry{val: val, tags: tags, expires: m.now().Add(ttl)}
	for _, t := range tags {
		set := m.byTag[t]
		if set == nil {
			set = make(map[string]struct{})
			m.byTag[t] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

func (m *Memory) InvalidateTags(_ context.Context, tags ...Tag) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range tags {
		for key := range m.byTag[t] {
			if _, ok := m.entries[key]; ok {
				m.removeLocked(key)
				n++
			}
		}
		delete(m.byTag, t)
	}
	return n, nil
}

func (m *Memory) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memEntry)
	m.byTag = make(map[Tag]map[string]struct{})
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Prune evicts expired entries and returns how many were removed.
func (m *Memory) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for key, e := range m.entries {
		if !e.expires.After(now) {
			m.removeLocked(key)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, t := range e.tags {
		if set := m.byTag[t]; set != nil {
			delete(set, key)
			if len(set) == 0 {
				delete(m.byTag, t)
			}
		}
	}
}
