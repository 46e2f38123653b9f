package revocation

import (
	"context"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// MemoryList is the single-instance revocation list.
type MemoryList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	clock   Clock
}

type MemoryOption func(*MemoryList)

func WithClock(clock Clock) MemoryOption {
	return func(l *MemoryList) {
		if clock != nil {
			l.clock = clock
		}
	}
}

func NewMemoryList(opts ...MemoryOption) *MemoryList {
	l := &MemoryList{
		revoked: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryList) Revoke(_ context.Context, digest string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[digest] = l.clock().Add(ttl)
	return nil
}

func (l *MemoryList) IsRevoked(_ context.Context, digest string) (bool, error) {
	l.mu.RLock()
	expiresAt, ok := l.revoked[digest]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !l.clock().Before(expiresAt) {
		l.mu.Lock()
		delete(l.revoked, digest)
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}
