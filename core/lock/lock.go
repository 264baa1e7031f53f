package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"go-events-api/core/logger"
)

// Locker is a per-key mutual exclusion guard for batch jobs. The reminder and
// sync jobs take a lock keyed by user so a manual trigger racing a scheduled
// trigger cannot double-process the same events.
type Locker interface {
	// Acquire returns a release func and true on success, or false when the
	// key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
}

type redisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	ok, err := l.client.SetNX(ctx, "joblock:"+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		if err := l.client.Del(context.Background(), "joblock:"+key).Err(); err != nil {
			logger.Warn("RedisLocker:Release:Error", "key", key, "error", err)
		}
	}
	return release, true, nil
}

type noopLocker struct{}

// NewNoopLocker returns a locker that always succeeds, for tests and for
// deployments without redis.
func NewNoopLocker() Locker { return noopLocker{} }

func (noopLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
