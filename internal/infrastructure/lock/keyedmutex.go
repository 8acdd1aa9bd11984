// Package lock provides the per-posting serialization primitives. Every
// allocation write happens under its posting's lock, so claims, withdrawals,
// forced assignments, and capacity edits on one posting never interleave.
package lock

import (
	"context"
	"sync"
	"time"

	apperrors "dutywire/internal/shared/errors"
)

// KeyedMutex serializes callers per key within a single process. The wait is
// bounded: a caller that cannot take the lock in time fails with a
// contention error instead of queueing indefinitely.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Acquire blocks until the key's lock is held, the wait elapses, or the
// context is cancelled. On success it returns the release function.
func (m *KeyedMutex) Acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		return func() {
			<-e.ch
			m.release(key, e)
		}, nil
	case <-timer.C:
		m.release(key, e)
		return nil, apperrors.NewContentionError("posting is busy, try again")
	case <-ctx.Done():
		m.release(key, e)
		return nil, apperrors.NewContentionError("request cancelled while waiting for posting lock")
	}
}

func (m *KeyedMutex) release(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}
