package otp

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	pending   PendingSignup
	expiresAt time.Time
}

// InMemoryPendingStore is a test and local-dev stand-in for the redis store.
type InMemoryPendingStore struct {
	entries map[string]memoryEntry
	ttl     time.Duration
	mu      sync.Mutex
}

func NewInMemoryPendingStore(ttl time.Duration) *InMemoryPendingStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &InMemoryPendingStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *InMemoryPendingStore) SavePending(ctx context.Context, pending *PendingSignup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[pending.User.Phone] = memoryEntry{
		pending:   *pending,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *InMemoryPendingStore) GetPending(ctx context.Context, phone string) (*PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[phone]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, phone)
		return nil, ErrPendingNotFound
	}
	cpy := entry.pending
	return &cpy, nil
}

func (s *InMemoryPendingStore) DeletePending(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, phone)
	return nil
}
