// Package lock provides per-key mutual exclusion for serializing units of
// work that share a mutable resource, such as concurrent purchases of the
// same package on the same host.
//
// KeyedMutex serializes within a single process; RedisLock extends the
// same contract across instances using a token-checked Redis lock.
package lock
