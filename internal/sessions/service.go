package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Service wraps repository operations with business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// CreateSession stores a new refresh session and returns the refresh token
func (s *Service) CreateSession(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	sess := &Session{
		RefreshToken: token,
		UserID:       userID,
		ExpiresAt:    time.Now().UTC().Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateRefresh returns the session if the refresh token is valid and not
// expired; nil otherwise.
func (s *Service) ValidateRefresh(ctx context.Context, refresh string) (*Session, error) {
	sess, err := s.repo.GetByRefresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.repo.DeleteByRefresh(ctx, refresh)
		return nil, nil
	}
	return sess, nil
}

// Rotate atomically replaces a validated session with a fresh token for the
// same user, invalidating the old one.
func (s *Service) Rotate(ctx context.Context, sess *Session, ttl time.Duration) (string, error) {
	if err := s.repo.DeleteByRefresh(ctx, sess.RefreshToken); err != nil {
		return "", err
	}
	return s.CreateSession(ctx, sess.UserID, ttl)
}

func (s *Service) DeleteRefresh(ctx context.Context, refresh string) error {
	return s.repo.DeleteByRefresh(ctx, refresh)
}

// DeleteAllForUser ends every session of the given user.
func (s *Service) DeleteAllForUser(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUser(ctx, userID)
}
