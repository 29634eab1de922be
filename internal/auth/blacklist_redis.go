package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "auth:blacklist:"

// RedisBlacklist stores revocation entries in Redis with a TTL aligned to
// the token's own expiry, so entries self-evict and revocation survives
// across multiple service instances.
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist wraps the shared Redis client.
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

// Revoke inserts the token signature with the remaining lifetime as TTL.
func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistKeyPrefix+SignaturePart(token), "1", ttl).Err()
}

// IsRevoked reports whether the token is present in the blacklist.
func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+SignaturePart(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
