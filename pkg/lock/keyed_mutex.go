package lock

import (
	"context"
	"sync"
)

// KeyedMutex is an in-process Locker. Each key gets its own mutual
// exclusion scope; entries are reference-counted and removed once the last
// waiter is gone, so the key space can grow without leaking.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*mutexEntry
}

type mutexEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex returns an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*mutexEntry)}
}

var _ Locker = (*KeyedMutex)(nil)

// Acquire blocks until the key is exclusively owned or the context is
// done. The returned release function is idempotent.
func (m *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &mutexEntry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				m.unref(key, e)
			})
		}, nil
	case <-ctx.Done():
		m.unref(key, e)
		return nil, ctx.Err()
	}
}

func (m *KeyedMutex) unref(key string, e *mutexEntry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
