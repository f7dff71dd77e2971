package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

// RedisStore keeps the token pair in Redis under the configured key names.
// Useful when several processes of the same client share a session.
type RedisStore struct {
	client     *redis.Client
	accessKey  string
	refreshKey string
	timeout    time.Duration
}

// NewRedisStore creates a Redis-backed store. Key names default to the
// product's storage keys when empty.
func NewRedisStore(client *redis.Client, accessKey, refreshKey string) *RedisStore {
	if accessKey == "" {
		accessKey = "gharsaathi_token"
	}
	if refreshKey == "" {
		refreshKey = "gharsaathi_refresh_token"
	}
	return &RedisStore{client: client, accessKey: accessKey, refreshKey: refreshKey, timeout: 2 * time.Second}
}

func (r *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RedisStore) get(key string) string {
	ctx, cancel := r.ctx()
	defer cancel()
	v, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warnf("tokenstore: redis get %s: %v", key, err)
		}
		return ""
	}
	return v
}

func (r *RedisStore) set(key, value string) {
	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		logger.Warnf("tokenstore: redis set %s: %v", key, err)
	}
}

func (r *RedisStore) AccessToken() string { return r.get(r.accessKey) }

func (r *RedisStore) SetAccessToken(token string) { r.set(r.accessKey, token) }

func (r *RedisStore) RefreshToken() string { return r.get(r.refreshKey) }

func (r *RedisStore) SetRefreshToken(token string) { r.set(r.refreshKey, token) }

func (r *RedisStore) Clear() {
	ctx, cancel := r.ctx()
	defer cancel()
	if err := r.client.Del(ctx, r.accessKey, r.refreshKey).Err(); err != nil {
		logger.Warnf("tokenstore: redis clear: %v", err)
	}
}
