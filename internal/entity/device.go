package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// MobileDevice represents one authenticated installation. A device row must
// exist before a challenge or refresh token can be bound to it.
type MobileDevice struct {
	bun.BaseModel `bun:"table:mobile_device"`

	ID         int        `json:"id"           bun:"id,pk,autoincrement"`
	UserID     int        `json:"user_id"      bun:"user_id"`
	DeviceID   string     `json:"device_id"    bun:"device_id"`
	Platform   *string    `json:"platform"     bun:"platform"`
	CreatedAt  time.Time  `json:"created_at"   bun:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at" bun:"last_seen_at"`
}
