package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker implements WindowLocker with SET NX + TTL, so a crashed holder
// cannot wedge the window forever.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func lockKey(window string) string {
	return fmt.Sprintf("rollout_lock_%s", window)
}

func (l *RedisLocker) Acquire(ctx context.Context, window string, ttl time.Duration) (func(), error) {
	ok, err := l.client.SetNX(ctx, lockKey(window), "1", ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire rollout lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// Release is best effort; TTL covers a lost delete.
		_ = l.client.Del(context.Background(), lockKey(window)).Err()
	}, nil
}
