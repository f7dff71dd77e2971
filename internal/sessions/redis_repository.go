package sessions

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository implements Repository using Redis. Sessions are stored as
// JSON under "session:<refreshToken>" with TTL = expiresAt - now, and each
// user's active tokens are tracked in a set so logout-everywhere can find
// them.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-based session repository. Prefix may be
// empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(refresh string) string {
	return r.prefix + refresh
}

func (r *RedisRepository) userKey(userID int64) string {
	return r.prefix + "user:" + strconv.FormatInt(userID, 10)
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = now.Add(7 * 24 * time.Hour)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	exp := time.Until(s.ExpiresAt)
	if exp <= 0 {
		exp = time.Second
	}
	if err := r.client.Set(ctx, r.key(s.RefreshToken), b, exp).Err(); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, r.userKey(s.UserID), s.RefreshToken).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, r.userKey(s.UserID), exp).Err()
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(refresh)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		_ = r.DeleteByRefresh(ctx, refresh)
		return nil, nil
	}
	return &s, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	s, err := r.GetByRefreshRaw(ctx, refresh)
	if err == nil && s != nil {
		_ = r.client.SRem(ctx, r.userKey(s.UserID), refresh).Err()
	}
	return r.client.Del(ctx, r.key(refresh)).Err()
}

// GetByRefreshRaw loads a session without the expiry check; used internally
// so deletion can locate the owning user's token set.
func (r *RedisRepository) GetByRefreshRaw(ctx context.Context, refresh string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(refresh)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisRepository) DeleteByUser(ctx context.Context, userID int64) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, tok := range tokens {
		if err := r.client.Del(ctx, r.key(tok)).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, r.userKey(userID)).Err()
}
