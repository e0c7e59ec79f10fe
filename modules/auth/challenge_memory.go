package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryChallengeStore is an in-process ChallengeStore for tests and local
// development. A mutex around the map gives the same per-email atomicity the
// mongo store gets from its unique index.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
	now        func() time.Time
}

// NewMemoryChallengeStore creates an empty in-memory store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]Challenge),
		now:        time.Now,
	}
}

// SetClock overrides the store's time source. Test helper.
func (s *MemoryChallengeStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Upsert creates-or-replaces the challenge for email, last writer wins.
func (s *MemoryChallengeStore) Upsert(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.challenges[email] = Challenge{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	return nil
}

// FindActive returns the challenge matching the (email, code) tuple.
func (s *MemoryChallengeStore) FindActive(ctx context.Context, email, code string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[email]
	if !ok || ch.Code != code {
		return nil, ErrChallengeNotFound
	}
	out := ch
	return &out, nil
}

// Remove deletes the challenge for email, idempotent if absent.
func (s *MemoryChallengeStore) Remove(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, email)
	return nil
}

// StartReclaim purges expired challenges every interval until ctx is done.
// Mirrors the TTL index of the mongo store so abandoned challenges do not
// accumulate in long-lived dev processes.
func (s *MemoryChallengeStore) StartReclaim(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.reclaim()
			}
		}
	}()
}

func (s *MemoryChallengeStore) reclaim() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for email, ch := range s.challenges {
		if now.After(ch.ExpiresAt) {
			delete(s.challenges, email)
		}
	}
}
