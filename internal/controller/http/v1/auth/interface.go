package auth

import (
	"context"

	"hrms/backend/internal/entity"
)

// User looks employees up for credential checks and token refresh.
type User interface {
	GetByEmployeeID(ctx context.Context, tenantID int, employeeID string) (entity.User, error)
	GetByID(ctx context.Context, id int) (entity.User, error)
}

// DeviceRegistry records and verifies mobile installations.
type DeviceRegistry interface {
	Register(ctx context.Context, userID int, deviceID string, platform *string) error
	Exists(ctx context.Context, userID int, deviceID string) (bool, error)
	Touch(ctx context.Context, userID int, deviceID string) error
}

// ChallengeIssuer mints single-use nonces for the mobile submission path.
type ChallengeIssuer interface {
	Issue(ctx context.Context, userID int, deviceID string) (string, error)
}

// TokenManager drives the refresh-token lifecycle.
type TokenManager interface {
	Issue(ctx context.Context, userID int, deviceID string) (string, error)
	Rotate(ctx context.Context, raw string) (string, *entity.RefreshToken, error)
	Revoke(ctx context.Context, raw string, deviceID string) error
}
