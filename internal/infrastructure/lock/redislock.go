package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

const (
	lockKeyPrefix = "dutywire:overtime:lock:"
	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only when it still belongs to the caller,
// so a lock that expired and was re-acquired is never released by the old
// holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes callers per posting across instances using
// SET NX PX. The TTL guards against a crashed holder wedging the posting.
type RedisLocker struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisLocker creates a redis-backed posting locker.
func NewRedisLocker(client *redis.Client, logger logger.Interface) *RedisLocker {
	return &RedisLocker{client: client, logger: logger}
}

// Acquire polls SET NX until the lock is taken or the wait elapses.
func (l *RedisLocker) Acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, lockTTL).Result()
		if err != nil {
			l.logger.Errorw("failed to acquire posting lock", "key", key, "error", err)
			return nil, apperrors.NewPersistenceFailureError("lock service unavailable")
		}
		if ok {
			return func() { l.release(key, redisKey, token) }, nil
		}

		if time.Now().After(deadline) {
			return nil, apperrors.NewContentionError("posting is busy, try again")
		}

		select {
		case <-time.After(retryInterval):
		case <-ctx.Done():
			return nil, apperrors.NewContentionError("request cancelled while waiting for posting lock")
		}
	}
}

func (l *RedisLocker) release(key, redisKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
		l.logger.Warnw("failed to release posting lock", "key", key, "error", err)
	}
}
