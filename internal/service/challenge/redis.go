package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hrms/backend/internal/entity"
)

const keyPrefix = "challenge:"

// claimScript deletes the nonce only when its stored binding matches the
// caller. GET + compare + DEL run inside one script call, so redis executes
// the claim atomically: concurrent consumers of one nonce see exactly one
// success.
var claimScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps challenges in redis with their TTL as key expiry, so
// expired nonces disappear without a sweeper.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func binding(userID int, deviceID string) string {
	return fmt.Sprintf("%d:%s", userID, deviceID)
}

func (s *RedisStore) Save(ctx context.Context, ch entity.Challenge) error {
	ttl := time.Until(ch.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	return s.client.Set(ctx, keyPrefix+ch.Nonce, binding(ch.UserID, ch.DeviceID), ttl).Err()
}

func (s *RedisStore) Claim(ctx context.Context, nonce string, userID int, deviceID string) (bool, error) {
	n, err := claimScript.Run(ctx, s.client, []string{keyPrefix + nonce}, binding(userID, deviceID)).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
