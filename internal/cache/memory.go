package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a process-local TTL cache. Entries self-expire; there is no
// cross-process coordination and no invalidation on write.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is swappable for tests
	now func() time.Time
}

// NewMemory creates a new in-process cache store
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) namespaceKey(key string) string {
	return "bytebrief:" + key
}

// Get retrieves a live value. Expired entries are dropped lazily.
func (m *Memory) Get(key string) (string, error) {
	k := m.namespaceKey(key)

	m.mu.RLock()
	entry, ok := m.entries[k]
	m.mu.RUnlock()

	if !ok {
		return "", ErrCacheMiss
	}
	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry between the two lock acquisitions.
		if cur, ok := m.entries[k]; ok && !m.now().Before(cur.expiresAt) {
			delete(m.entries, k)
		}
		m.mu.Unlock()
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with an absolute expiry of now + ttl
func (m *Memory) Set(key string, value interface{}, ttl time.Duration) error {
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprintf("%v", value)
	}

	m.mu.Lock()
	m.entries[m.namespaceKey(key)] = memoryEntry{
		value:     str,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

// Delete removes a key
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, m.namespaceKey(key))
	m.mu.Unlock()
	return nil
}

// Exists checks whether a live entry is present
func (m *Memory) Exists(key string) (bool, error) {
	_, err := m.Get(key)
	if err == ErrCacheMiss {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close is a no-op for the in-process store
func (m *Memory) Close() error {
	return nil
}

// Health always reports healthy for the in-process store
func (m *Memory) Health(ctx context.Context) error {
	return nil
}
