package tokenstore

import "sync"

// Store persists the current access/refresh token pair. Implementations must
// be safe to call when no backing storage is available: getters return the
// empty string and setters become no-ops rather than failing.
type Store interface {
	AccessToken() string
	SetAccessToken(token string)
	RefreshToken() string
	SetRefreshToken(token string)
	// Clear removes both tokens. Idempotent.
	Clear()
}

// MemoryStore keeps tokens for the lifetime of the process only. It is the
// fallback for environments without persistent storage and the default in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *MemoryStore) SetAccessToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = token
}

func (m *MemoryStore) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

func (m *MemoryStore) SetRefreshToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh = token
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
}
