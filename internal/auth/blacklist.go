package auth

import (
	"context"
	"sync"
	"time"
)

// TokenBlacklist records revoked tokens until their natural expiry.
// Revoke is idempotent; IsRevoked must observe every Revoke that
// completed before it began, under arbitrary concurrent access.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryBlacklist is a process-local blacklist keyed by token signature.
// Entries carry their token's expiry and are swept lazily, so the set is
// bounded by the number of live revocations. Suitable for tests and
// single-instance deployments; multi-instance setups need the redis
// implementation.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryBlacklist creates an empty blacklist.
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time)}
}

// Revoke inserts the token for the remainder of its lifetime.
func (b *MemoryBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired; verification rejects it anyway
		return nil
	}
	key := SignaturePart(token)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweepLocked()
	b.entries[key] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token was revoked and is still unexpired.
func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	key := SignaturePart(token)
	b.mu.Lock()
	defer b.mu.Unlock()
	expiry, ok := b.entries[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.entries, key)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBlacklist) sweepLocked() {
	now := time.Now()
	for key, expiry := range b.entries {
		if now.After(expiry) {
			delete(b.entries, key)
		}
	}
}
