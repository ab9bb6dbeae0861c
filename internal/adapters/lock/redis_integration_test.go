//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"eventregistration/internal/adapters/auth"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(addr)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	locker := NewRedisLocker(client, auth.NewCapabilityTokenIssuer())

	release, ok, err := locker.TryLock(ctx, "purge", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, "purge", time.Minute)
	require.NoError(t, err)
	require.False(t, ok, "second holder must not acquire a held lock")

	require.NoError(t, release(ctx))

	release, ok, err = locker.TryLock(ctx, "purge", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, release(ctx))
}

func TestRedisLocker_ExpiredLeaseNotReleasedByStaleHolder(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	locker := NewRedisLocker(client, auth.NewCapabilityTokenIssuer())

	staleRelease, ok, err := locker.TryLock(ctx, "purge", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	_, ok, err = locker.TryLock(ctx, "purge", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, staleRelease(ctx))
	exists, err := client.Exists(ctx, "purge").Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, exists)
}
