package lock

import "errors"

var (
	ErrNotAcquired    = errors.New("lock not acquired")
	ErrEmptyKey       = errors.New("lock key must not be empty")
	ErrNilRedisClient = errors.New("redis client is required")
)
