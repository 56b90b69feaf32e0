package lock

import "context"

// Locker grants exclusive ownership of arbitrary string keys. Acquire
// blocks until the key is owned or the context is done; the returned
// release function must be called on every exit path and is safe to call
// more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
