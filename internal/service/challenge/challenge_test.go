package challenge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeDevices struct {
	known map[string]int // deviceID -> userID
}

func (f fakeDevices) Exists(_ context.Context, userID int, deviceID string) (bool, error) {
	u, ok := f.known[deviceID]
	return ok && u == userID, nil
}

func newTestIssuer(opts ...Option) (*Issuer, *InMemoryStore) {
	store := NewInMemoryStore()
	devices := fakeDevices{known: map[string]int{"device-a": 1, "device-b": 2}}
	return NewIssuer(store, devices, opts...), store
}

func TestIssueAndConsumeOnce(t *testing.T) {
	issuer, _ := newTestIssuer()
	ctx := context.Background()

	nonce, err := issuer.Issue(ctx, 1, "device-a")
	require.NoError(t, err)
	require.Len(t, nonce, 64, "nonce is 32 random bytes hex encoded")

	require.NoError(t, issuer.Consume(ctx, nonce, 1, "device-a"))
	require.ErrorIs(t, issuer.Consume(ctx, nonce, 1, "device-a"), ErrInvalid, "second consumption must fail")
}

func TestIssueRequiresRegisteredDevice(t *testing.T) {
	issuer, _ := newTestIssuer()

	_, err := issuer.Issue(context.Background(), 1, "unknown-device")
	require.ErrorIs(t, err, ErrDeviceNotRegistered)

	// device-b belongs to user 2, not user 1
	_, err = issuer.Issue(context.Background(), 1, "device-b")
	require.ErrorIs(t, err, ErrDeviceNotRegistered)
}

func TestConsumeBindingMismatch(t *testing.T) {
	issuer, _ := newTestIssuer()
	ctx := context.Background()

	nonce, err := issuer.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	require.ErrorIs(t, issuer.Consume(ctx, nonce, 2, "device-a"), ErrInvalid, "wrong user")
	require.ErrorIs(t, issuer.Consume(ctx, nonce, 1, "device-b"), ErrInvalid, "wrong device")

	// the failed attempts must not have burned the nonce
	require.NoError(t, issuer.Consume(ctx, nonce, 1, "device-a"))
}

func TestConsumeExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := now

	store := NewInMemoryStore()
	store.now = func() time.Time { return clock }
	devices := fakeDevices{known: map[string]int{"device-a": 1}}
	issuer := NewIssuer(store, devices, WithClock(func() time.Time { return clock }))

	nonce, err := issuer.Issue(context.Background(), 1, "device-a")
	require.NoError(t, err)

	clock = now.Add(TTL + time.Second)
	require.ErrorIs(t, issuer.Consume(context.Background(), nonce, 1, "device-a"), ErrInvalid)
}

func TestConsumeMissingOrEmpty(t *testing.T) {
	issuer, _ := newTestIssuer()
	ctx := context.Background()

	require.ErrorIs(t, issuer.Consume(ctx, "", 1, "device-a"), ErrInvalid)
	require.ErrorIs(t, issuer.Consume(ctx, "no-such-nonce", 1, "device-a"), ErrInvalid)
}

func TestConcurrentConsumptionSingleWinner(t *testing.T) {
	issuer, _ := newTestIssuer()
	ctx := context.Background()

	nonce, err := issuer.Issue(ctx, 1, "device-a")
	require.NoError(t, err)

	const n = 32
	var successes, invalid int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := issuer.Consume(ctx, nonce, 1, "device-a"); err {
			case nil:
				atomic.AddInt64(&successes, 1)
			case ErrInvalid:
				atomic.AddInt64(&invalid, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, successes, "exactly one concurrent consumer may win")
	require.EqualValues(t, n-1, invalid)
}
