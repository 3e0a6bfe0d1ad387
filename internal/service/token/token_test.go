package token

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueStoresOnlyTheHash(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)

	raw, err := m.Issue(context.Background(), 1, "device-a")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	require.Nil(t, store.get(raw), "raw value must never be a lookup key")
	stored := store.get(HashToken(raw))
	require.NotNil(t, stored)
	require.Equal(t, 1, stored.UserID)
	require.Equal(t, "device-a", stored.DeviceID)
	require.False(t, stored.IsRevoked())
}

func TestIssueReplacesCurrentToken(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	first, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)
	second, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	require.True(t, store.get(HashToken(first)).IsRevoked(), "previous token must be revoked on re-issue")
	require.False(t, store.get(HashToken(second)).IsRevoked())

	_, _, err = m.Rotate(ctx, first)
	require.ErrorIs(t, err, ErrInvalid, "replaced token must not rotate")
}

func TestRotateInvalidatesOldRaw(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	newRaw, next, err := m.Rotate(ctx, raw)
	require.NoError(t, err)
	require.NotEqual(t, raw, newRaw)
	require.Equal(t, 1, next.UserID)
	require.Equal(t, "device-a", next.DeviceID, "rotation keeps the device binding")

	_, _, err = m.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalid, "old raw value must fail after rotation")

	_, _, err = m.Rotate(ctx, newRaw)
	require.NoError(t, err, "the replacement rotates normally")
}

func TestRotateExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := now

	store := NewInMemoryStore()
	store.now = func() time.Time { return clock }
	m := NewManager(store, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	clock = now.Add(TTL + time.Hour)

	_, _, err = m.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestRevokeIsIdempotent(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, raw, "device-a"))
	require.NoError(t, m.Revoke(ctx, raw, "device-a"), "second revoke is a no-op")
	require.NoError(t, m.Revoke(ctx, "unknown-raw", "device-a"), "unknown token is a no-op")

	_, _, err = m.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalid, "revocation is irreversible")
}

func TestRevokeMismatchedDeviceIsNoOp(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, raw, "device-b"))
	require.False(t, store.get(HashToken(raw)).IsRevoked(), "mismatched device must not revoke")
}

func TestConcurrentRotateSingleWinner(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	const n = 16
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := m.Rotate(ctx, raw); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, successes, "one rotation wins; a revoked token is never resurrected")
}

func TestRevokeWinsOverLateRotation(t *testing.T) {
	store := NewInMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	raw, err := m.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, raw, "device-a"))

	_, _, err = m.Rotate(ctx, raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestHashTokenDeterministic(t *testing.T) {
	require.Equal(t, HashToken("abc"), HashToken("abc"))
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
