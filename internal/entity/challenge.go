package entity

import (
	"time"
)

// Challenge is a single-use server-issued nonce bound to a (user, device)
// pair. ConsumedAt transitions from nil to a timestamp exactly once.
type Challenge struct {
	Nonce      string     `json:"nonce"`
	UserID     int        `json:"user_id"`
	DeviceID   string     `json:"device_id"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
}
