// Package cache provides the time-boxed store used to memoize external
// feed responses. Entries carry their own expiry; expired entries read as
// missing. The memory store is the default; the sqlite store survives
// restarts for long TTLs.
package cache

import (
	"sync"
	"time"
)

// Store is a key/value store with per-entry expiry.
type Store interface {
	// Get returns the value for key, or ok=false if the key is missing or
	// its entry has expired.
	Get(key string) (value []byte, ok bool)
	// Set stores value under key for ttl. A non-positive ttl is a no-op.
	Set(key string, value []byte, ttl time.Duration)
	// Close releases any resources held by the store.
	Close() error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates an empty MemoryStore. maxEntries caps the store
// size; 0 means unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached value for key if present and unexpired.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	now := s.now()

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return entry.value, true
}

// Set stores value under key for ttl.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictExpired(now)
		if len(s.entries) >= s.maxEntries {
			s.evictOne()
		}
	}

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: now.Add(ttl),
	}
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// evictExpired removes all expired entries. Caller must hold the lock.
func (s *MemoryStore) evictExpired(now time.Time) {
	for key, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
}

// evictOne removes an arbitrary entry. Caller must hold the lock.
func (s *MemoryStore) evictOne() {
	for key := range s.entries {
		delete(s.entries, key)
		return
	}
}
