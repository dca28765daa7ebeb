package otp

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
)

// MemoryStore keeps entries in process memory. Entries are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.OTPEntry
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Sweeper = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]domain.OTPEntry)}
}

func (s *MemoryStore) Get(_ context.Context, email string) (domain.OTPEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[email]
	return e, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, email string, entry domain.OTPEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry
	return nil
}

func (s *MemoryStore) DeleteIf(_ context.Context, email string, expected domain.OTPEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok || e.Code != expected.Code || !e.ExpiresAt.Equal(expected.ExpiresAt) {
		return false, nil
	}
	delete(s.entries, email)
	return true, nil
}

func (s *MemoryStore) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for email, e := range s.entries {
		if e.ExpiresAt.Before(cutoff) {
			delete(s.entries, email)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
