package blob

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Memory hands out unsigned URLs under BaseURL. Keys registered with Put are
// the only ones that resolve when Strict is set.
type Memory struct {
	BaseURL string
	Strict  bool

	mu    sync.RWMutex
	keys  map[string]struct{}
	clock func() time.Time
}

func NewMemory(baseURL string) *Memory {
	return &Memory{
		BaseURL: baseURL,
		keys:    make(map[string]struct{}),
		clock:   time.Now,
	}
}

func (m *Memory) Put(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = struct{}{}
}

func (m *Memory) Resolve(_ context.Context, key string, ttl time.Duration) (*Handle, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if m.Strict {
		m.mu.RLock()
		_, ok := m.keys[key]
		m.mu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}
	}
	expiresAt := m.clock().UTC().Add(ttl)
	q := url.Values{}
	q.Set("se", strconv.FormatInt(expiresAt.Unix(), 10))
	return &Handle{
		URL:       m.BaseURL + "/" + url.PathEscape(key) + "?" + q.Encode(),
		ExpiresAt: expiresAt,
	}, nil
}
