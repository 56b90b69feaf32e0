package lock_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onteko/billingkit/pkg/lock"
)

func TestNewRedisLock_RequiresClient(t *testing.T) {
	t.Parallel()

	l, err := lock.NewRedisLock(nil)
	require.ErrorIs(t, err, lock.ErrNilRedisClient)
	assert.Nil(t, l)
}

func TestNewRedisLock_Options(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	l, err := lock.NewRedisLock(client,
		lock.WithTTL(time.Minute),
		lock.WithRetryInterval(10*time.Millisecond),
	)
	require.NoError(t, err)
	assert.NotNil(t, l)

	// Non-positive values keep the defaults rather than breaking the lock.
	l, err = lock.NewRedisLock(client,
		lock.WithTTL(0),
		lock.WithRetryInterval(-time.Second),
	)
	require.NoError(t, err)
	assert.NotNil(t, l)
}
