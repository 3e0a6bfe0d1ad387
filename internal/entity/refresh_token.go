package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RefreshToken is a device-bound long-lived credential. Only the hash of the
// raw value is ever stored; the raw token exists transiently in the handler.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_token"`

	ID        uuid.UUID  `json:"id"         bun:"id,pk,type:uuid"`
	UserID    int        `json:"user_id"    bun:"user_id"`
	DeviceID  string     `json:"device_id"  bun:"device_id"`
	TokenHash string     `json:"-"          bun:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" bun:"expires_at"`
	CreatedAt time.Time  `json:"created_at" bun:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" bun:"revoked_at"`
}

// IsExpired reports whether the token has passed its expiry.
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked reports whether the token has been revoked. Revocation is
// irreversible.
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}
