package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests and dev runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	byToken map[string]*Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byToken: make(map[string]*Session)}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Session) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = now.Add(7 * 24 * time.Hour)
	}
	cp := *s
	r.mu.Lock()
	r.byToken[s.RefreshToken] = &cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byToken[refresh]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	r.mu.Lock()
	delete(r.byToken, refresh)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID int64) error {
	r.mu.Lock()
	for tok, s := range r.byToken {
		if s.UserID == userID {
			delete(r.byToken, tok)
		}
	}
	r.mu.Unlock()
	return nil
}
