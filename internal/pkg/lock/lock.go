// Package lock guards the rollout destination window. The engine's mutations
// are incremental, so two rollouts racing on the same window would interleave
// purges and clones; callers must hold the window lock for the duration.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLocked means another holder owns the window.
var ErrLocked = errors.New("window is locked by another rollout")

// WindowLocker serializes rollouts per destination window. Acquire returns a
// release func on success and ErrLocked when another holder is active.
type WindowLocker interface {
	Acquire(ctx context.Context, window string, ttl time.Duration) (release func(), err error)
}

// InProcessLocker is the single-node implementation used with the embedded
// store driver and in tests.
type InProcessLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewInProcessLocker() *InProcessLocker {
	return &InProcessLocker{held: make(map[string]time.Time)}
}

func (l *InProcessLocker) Acquire(_ context.Context, window string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.held[window]; ok && time.Now().Before(expiry) {
		return nil, ErrLocked
	}
	l.held[window] = time.Now().Add(ttl)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, window)
	}, nil
}
