// Package challenge issues and consumes the single-use nonces that protect
// the mobile submission channel against replay. A nonce is bound to one
// (user, device) pair and is consumed exactly once; everything else fails
// with ErrInvalid.
package challenge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"hrms/backend/internal/entity"
)

// TTL is how long an issued nonce stays consumable.
const TTL = 2 * time.Minute

const nonceBytes = 32

// ErrInvalid covers every consumption failure: missing, expired, already
// consumed, or bound to a different (user, device). Callers never learn
// which.
var ErrInvalid = errors.New("challenge invalid")

// ErrDeviceNotRegistered is returned on issue when the (user, device) pair
// has no registered installation.
var ErrDeviceNotRegistered = errors.New("device is not registered")

// Store persists challenges. Claim is the atomic single-use gate: among
// concurrent claims of one nonce exactly one returns true.
type Store interface {
	Save(ctx context.Context, ch entity.Challenge) error
	Claim(ctx context.Context, nonce string, userID int, deviceID string) (bool, error)
}

// DeviceRegistry answers whether an installation is known.
type DeviceRegistry interface {
	Exists(ctx context.Context, userID int, deviceID string) (bool, error)
}

// Issuer issues and consumes challenges.
type Issuer struct {
	store   Store
	devices DeviceRegistry
	ttl     time.Duration
	now     func() time.Time
}

// Option tweaks issuer construction.
type Option func(*Issuer)

// WithTTL overrides the nonce lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

// WithClock replaces the issuer's clock.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(store Store, devices DeviceRegistry, opts ...Option) *Issuer {
	i := &Issuer{
		store:   store,
		devices: devices,
		ttl:     TTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a fresh nonce bound to (userID, deviceID). The device must be
// registered first.
func (i *Issuer) Issue(ctx context.Context, userID int, deviceID string) (string, error) {
	ok, err := i.devices.Exists(ctx, userID, deviceID)
	if err != nil {
		return "", errors.Wrap(err, "checking device registration")
	}
	if !ok {
		return "", ErrDeviceNotRegistered
	}

	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generating nonce")
	}
	nonce := hex.EncodeToString(buf)

	now := i.now()
	ch := entity.Challenge{
		Nonce:     nonce,
		UserID:    userID,
		DeviceID:  deviceID,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
	}

	if err := i.store.Save(ctx, ch); err != nil {
		return "", errors.Wrap(err, "saving challenge")
	}

	return nonce, nil
}

// Consume claims the nonce for (userID, deviceID). Exactly one concurrent
// caller succeeds; all other outcomes are ErrInvalid.
func (i *Issuer) Consume(ctx context.Context, nonce string, userID int, deviceID string) error {
	if nonce == "" {
		return ErrInvalid
	}

	ok, err := i.store.Claim(ctx, nonce, userID, deviceID)
	if err != nil {
		return errors.Wrap(err, "claiming challenge")
	}
	if !ok {
		return ErrInvalid
	}

	return nil
}
