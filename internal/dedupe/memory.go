package dedupe

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seen map[string]time.Time
}

// NewMemory creates a process-local Store
func NewMemory(ttl time.Duration) Store {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		ttl:  ttl,
		now:  now,
		seen: make(map[string]time.Time),
	}
}

func (s *memoryStore) Seen(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.seen {
		if !now.Before(exp) {
			delete(s.seen, k)
		}
	}

	if _, ok := s.seen[key]; ok {
		return true, nil
	}
	s.seen[key] = now.Add(s.ttl)
	return false, nil
}

func (s *memoryStore) Forget(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, key)
	return nil
}

func (s *memoryStore) Close() error { return nil }
