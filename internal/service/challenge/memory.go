package challenge

import (
	"context"
	"sync"
	"time"

	"hrms/backend/internal/entity"
)

// InMemoryStore is a Store backed by a mutex-guarded map. It honors the same
// single-claim contract as the redis store and backs the tests.
type InMemoryStore struct {
	mu         sync.Mutex
	challenges map[string]*entity.Challenge
	now        func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		challenges: make(map[string]*entity.Challenge),
		now:        time.Now,
	}
}

func (s *InMemoryStore) Save(ctx context.Context, ch entity.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := ch
	s.challenges[ch.Nonce] = &cp
	return nil
}

func (s *InMemoryStore) Claim(ctx context.Context, nonce string, userID int, deviceID string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[nonce]
	if !ok || ch.ConsumedAt != nil {
		return false, nil
	}
	if now.After(ch.ExpiresAt) {
		return false, nil
	}
	if ch.UserID != userID || ch.DeviceID != deviceID {
		// A mismatched caller never consumes the nonce; the rightful owner
		// can still claim it.
		return false, nil
	}

	ch.ConsumedAt = &now
	return true, nil
}
