package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another request currently holds the lock for
// the same attempt.
var ErrLockHeld = errors.New("attempt is locked by another request")

// AttemptLocker serializes the load-mutate-save cycle per attempt id so
// concurrent answer submissions (double-click submit) cannot interleave.
// The version check on save remains the backstop when a lock expires.
type AttemptLocker interface {
	Lock(ctx context.Context, attemptID string) (release func(), err error)
}

type redisAttemptLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAttemptLocker(client *redis.Client, ttl time.Duration) AttemptLocker {
	return &redisAttemptLocker{client: client, ttl: ttl}
}

func (l *redisAttemptLocker) Lock(ctx context.Context, attemptID string) (func(), error) {
	key := "attempt_lock:" + attemptID
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire attempt lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		// Only the holder may release: compare the token before deleting so
		// an expired-and-reacquired lock is not removed by the old holder.
		const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
		l.client.Eval(context.Background(), script, []string{key}, token)
	}
	return release, nil
}

// localAttemptLocker is an in-process fallback used in tests and single
// instance deployments without redis.
type localAttemptLocker struct {
	mu    sync.Mutex
	locks map[string]bool
}

func NewLocalAttemptLocker() AttemptLocker {
	return &localAttemptLocker{locks: make(map[string]bool)}
}

func (l *localAttemptLocker) Lock(_ context.Context, attemptID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks[attemptID] {
		return nil, ErrLockHeld
	}
	l.locks[attemptID] = true

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locks, attemptID)
	}
	return release, nil
}
