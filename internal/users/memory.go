package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests and single-node dev
// runs without MongoDB.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]*User)}
}

func (r *MemoryRepository) Create(ctx context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.byID[u.ID] = &cp
	return u, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
