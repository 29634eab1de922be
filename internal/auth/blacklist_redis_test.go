package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedisBlacklist(t *testing.T) (*RedisBlacklist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBlacklist(client), mr
}

func TestRedisBlacklist_RevokeAndLookup(t *testing.T) {
	bl, _ := setupRedisBlacklist(t)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "h.p.sig")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "h.p.sig", time.Minute))

	revoked, err = bl.IsRevoked(ctx, "h.p.sig")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestRedisBlacklist_EntrySelfEvicts(t *testing.T) {
	bl, mr := setupRedisBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "h.p.sig", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := bl.IsRevoked(ctx, "h.p.sig")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestRedisBlacklist_LookupFailsWhenRedisDown(t *testing.T) {
	bl, mr := setupRedisBlacklist(t)
	ctx := context.Background()

	mr.Close()

	_, err := bl.IsRevoked(ctx, "h.p.sig")
	require.Error(t, err)
}
