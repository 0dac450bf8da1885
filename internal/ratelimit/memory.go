package ratelimit

import (
	"sync"
	"time"
)

// counter holds the bucketed count for one client key. The count never
// reflects requests older than the window: Increment resets it when the
// window has elapsed.
type counter struct {
	count       int
	windowStart time.Time
}

// MemoryStore is an in-process CounterStore backed by a mutex-guarded
// map. It is safe for concurrent use and sufficient at single-process
// scale.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*counter
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*counter)}
}

// Increment atomically bumps the counter for key, starting a fresh window
// when none exists yet or the previous one has elapsed.
func (s *MemoryStore) Increment(key string, now time.Time, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.Sub(entry.windowStart) >= window {
		entry = &counter{windowStart: now}
		s.entries[key] = entry
	}
	entry.count++

	return entry.count, entry.windowStart
}
