package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventregistration/internal/domain"
)

// releaseScript deletes the key only if it still holds our lease value.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client  redis.UniversalClient
	tokenFn func() (string, error)
}

// NewRedisLocker returns a Locker that takes a lease with SET NX PX.
// tokens identify the holder so an expired lease is never released by a stale holder.
func NewRedisLocker(client redis.UniversalClient, tokens domain.TokenIssuer) domain.Locker {
	return &redisLocker{client: client, tokenFn: tokens.Issue}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	value, err := l.tokenFn()
	if err != nil {
		return nil, false, fmt.Errorf("lock value: %w", err)
	}
	ok, err := l.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %q: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, value).Err(); err != nil {
			return fmt.Errorf("release lock %q: %w", key, err)
		}
		return nil
	}
	return release, true, nil
}

// NoopLocker always grants the lock. Used when no Redis is configured.
type NoopLocker struct{}

func (NoopLocker) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}
