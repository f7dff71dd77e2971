package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist records revoked access tokens in Redis until their natural
// expiry. A nil receiver or nil client disables the feature: every check
// reports not-blacklisted.
type Blacklist struct {
	client *redis.Client
}

func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

func (b *Blacklist) key(token string) string {
	return "blacklist:access:" + token
}

// Add stores the token with the given TTL. No-op without a Redis client.
func (b *Blacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if b == nil || b.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.key(token), "1", ttl).Err()
}

// Contains reports whether the token has been revoked.
func (b *Blacklist) Contains(ctx context.Context, token string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	exists, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
