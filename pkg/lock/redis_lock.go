package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds our token,
// so an expired lock reacquired by another owner is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLock is a Locker backed by Redis SET NX PX, for serializing
// purchase scopes across service instances. The TTL bounds how long a
// crashed owner can hold a key.
type RedisLock struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
}

// RedisLockOption configures a RedisLock.
type RedisLockOption func(*RedisLock)

// WithTTL sets how long an acquired key survives a crashed owner.
func WithTTL(ttl time.Duration) RedisLockOption {
	return func(l *RedisLock) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetryInterval sets the polling interval while waiting for a key.
func WithRetryInterval(interval time.Duration) RedisLockOption {
	return func(l *RedisLock) {
		if interval > 0 {
			l.retryInterval = interval
		}
	}
}

// NewRedisLock creates a distributed keyed lock on the given client.
func NewRedisLock(client *redis.Client, opts ...RedisLockOption) (*RedisLock, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}

	l := &RedisLock{
		client:        client,
		ttl:           30 * time.Second,
		retryInterval: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

var _ Locker = (*RedisLock)(nil)

// Acquire polls SET NX until the key is owned or the context is done.
// The release function deletes the key only while our token still holds it.
func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	token := uuid.NewString()
	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Join(ErrNotAcquired, err)
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					// Release must survive a canceled request context.
					releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
					defer cancel()
					_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
				})
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}
