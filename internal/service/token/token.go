// Package token manages the refresh-token lifecycle: device-bound
// long-lived credentials used to mint short-lived access tokens. Only a
// one-way hash of a token is ever stored; the raw value exists transiently
// in the handler that issued or received it.
package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hrms/backend/internal/entity"
)

// TTL is the refresh-token lifetime.
const TTL = 30 * 24 * time.Hour

const rawBytes = 32

// ErrInvalid is returned when rotation is attempted with a token that is
// unknown, expired, or revoked. A revoked token can never be resurrected.
var ErrInvalid = errors.New("refresh token invalid")

// HashToken is the one-way mapping from raw token to the stored value.
// Lookups are always by hash, never by raw value.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.URLEncoding.EncodeToString(sum[:])
}

// Store is the storage boundary. Replace and Rotate are atomic with respect
// to concurrent rotation/revocation of the same (user, device): after either
// commits, at most one non-revoked token is current for the pair.
type Store interface {
	// Replace revokes the pair's current token, if any, and inserts t.
	Replace(ctx context.Context, t *entity.RefreshToken) error

	// Rotate atomically revokes the live token matching oldHash and inserts
	// a replacement bound to the same (user, device). It returns nil when
	// oldHash matches no live token.
	Rotate(ctx context.Context, oldHash string, id uuid.UUID, newHash string, expiresAt time.Time) (*entity.RefreshToken, error)

	// Revoke marks the token matching hash revoked when it is bound to
	// deviceID. Revoking twice or with a mismatched device is a no-op.
	Revoke(ctx context.Context, hash string, deviceID string) error
}

// Manager implements issue/rotate/revoke over a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// Option tweaks manager construction.
type Option func(*Manager)

// WithTTL overrides the refresh-token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithClock replaces the manager's clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   TTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newRaw() (string, error) {
	buf := make([]byte, rawBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generating refresh token")
	}
	return hex.EncodeToString(buf), nil
}

// Issue mints a refresh token for (userID, deviceID) and returns the raw
// value. Any previously current token for the pair is revoked.
func (m *Manager) Issue(ctx context.Context, userID int, deviceID string) (string, error) {
	raw, err := newRaw()
	if err != nil {
		return "", err
	}

	now := m.now()
	t := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		DeviceID:  deviceID,
		TokenHash: HashToken(raw),
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	if err := m.store.Replace(ctx, t); err != nil {
		return "", errors.Wrap(err, "storing refresh token")
	}

	return raw, nil
}

// Rotate invalidates raw and returns a replacement bound to the same
// (user, device). After rotation the old raw value fails lookup.
func (m *Manager) Rotate(ctx context.Context, raw string) (string, *entity.RefreshToken, error) {
	newValue, err := newRaw()
	if err != nil {
		return "", nil, err
	}

	next, err := m.store.Rotate(ctx, HashToken(raw), uuid.New(), HashToken(newValue), m.now().Add(m.ttl))
	if err != nil {
		return "", nil, errors.Wrap(err, "rotating refresh token")
	}
	if next == nil {
		return "", nil, ErrInvalid
	}

	return newValue, next, nil
}

// Revoke marks the token revoked. It is idempotent: revoking twice, an
// unknown raw value, or a token bound to a different device all succeed
// without effect.
func (m *Manager) Revoke(ctx context.Context, raw string, deviceID string) error {
	if err := m.store.Revoke(ctx, HashToken(raw), deviceID); err != nil {
		return errors.Wrap(err, "revoking refresh token")
	}
	return nil
}
