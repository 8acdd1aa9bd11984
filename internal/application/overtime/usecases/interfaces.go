package usecases

import (
	"context"
	"time"
)

// PostingLocker serializes allocation work per posting. Acquire blocks until
// the posting's lock is held or the wait budget elapses; implementations
// return a contention error on expiry. The returned function releases the
// lock and must be called exactly once.
type PostingLocker interface {
	Acquire(ctx context.Context, postingSID string, wait time.Duration) (func(), error)
}
