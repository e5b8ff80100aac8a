package session

import (
	"context"
	"sync"
	"time"
)

// Store persists one User per session id until its TTL elapses.
type Store interface {
	Get(ctx context.Context, sid string) (User, error)
	Set(ctx context.Context, sid string, u User, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	user      User
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return User{}, ErrNotFound
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, sid)
		return User{}, ErrNotFound
	}
	return e.user, nil
}

func (s *MemoryStore) Set(_ context.Context, sid string, u User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{user: u}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[sid] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
