package lock

import (
	"context"
	"sync"
	"time"

	"carwash-scheduler/internal/pkg/clock"
	"carwash-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker coordinates goroutines of a single process. Expiry is evaluated against
// the clock; expired keys are dropped on the next Acquire.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]entry
	clock clock.Clock
}

func NewMemoryLocker(clk clock.Clock) *MemoryLocker {
	return &MemoryLocker{held: make(map[string]entry), clock: clk}
}

var _ shared.Locker = (*MemoryLocker)(nil)

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (shared.Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for k, e := range l.held {
		if !now.Before(e.expiresAt) {
			delete(l.held, k)
		}
	}
	if _, ok := l.held[key]; ok {
		return shared.Lease{}, false, nil
	}
	e := entry{token: uuid.NewString(), expiresAt: now.Add(ttl)}
	l.held[key] = e
	return shared.Lease{Key: key, Token: e.token, ExpiresAt: e.expiresAt}, true, nil
}

func (l *MemoryLocker) Release(_ context.Context, lease shared.Lease) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.owns(lease) {
		return false, nil
	}
	delete(l.held, lease.Key)
	return true, nil
}

func (l *MemoryLocker) Extend(_ context.Context, lease shared.Lease, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.owns(lease) {
		return false, nil
	}
	l.held[lease.Key] = entry{token: lease.Token, expiresAt: l.clock.Now().Add(ttl)}
	return true, nil
}

func (l *MemoryLocker) owns(lease shared.Lease) bool {
	e, ok := l.held[lease.Key]
	return ok && e.token == lease.Token && l.clock.Now().Before(e.expiresAt)
}
