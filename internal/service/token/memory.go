package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrms/backend/internal/entity"
)

// InMemoryStore is a Store backed by a mutex-guarded map keyed by token
// hash. The postgres store is the durable implementation; this one backs the
// tests and honors the same atomicity contract.
type InMemoryStore struct {
	mu     sync.Mutex
	byHash map[string]*entity.RefreshToken
	now    func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byHash: make(map[string]*entity.RefreshToken),
		now:    time.Now,
	}
}

func (s *InMemoryStore) Replace(ctx context.Context, t *entity.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revokeCurrentLocked(t.UserID, t.DeviceID)

	cp := *t
	s.byHash[t.TokenHash] = &cp
	return nil
}

func (s *InMemoryStore) Rotate(ctx context.Context, oldHash string, id uuid.UUID, newHash string, expiresAt time.Time) (*entity.RefreshToken, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byHash[oldHash]
	if !ok || old.IsRevoked() || now.After(old.ExpiresAt) {
		return nil, nil
	}

	old.RevokedAt = &now

	next := &entity.RefreshToken{
		ID:        id,
		UserID:    old.UserID,
		DeviceID:  old.DeviceID,
		TokenHash: newHash,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	s.byHash[newHash] = next

	cp := *next
	return &cp, nil
}

func (s *InMemoryStore) Revoke(ctx context.Context, hash string, deviceID string) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byHash[hash]
	if !ok || t.IsRevoked() || t.DeviceID != deviceID {
		return nil
	}

	t.RevokedAt = &now
	return nil
}

// revokeCurrentLocked revokes the pair's live token. Callers hold the mutex.
func (s *InMemoryStore) revokeCurrentLocked(userID int, deviceID string) {
	now := s.now()
	for _, t := range s.byHash {
		if t.UserID == userID && t.DeviceID == deviceID && !t.IsRevoked() {
			t.RevokedAt = &now
		}
	}
}

// get returns the stored token for a hash; tests use it to observe state.
func (s *InMemoryStore) get(hash string) *entity.RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byHash[hash]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}
