package device

import (
	"context"
	"time"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// Repository is the mobile device registry. A device row must exist before
// a challenge or refresh token can be bound to it.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Register upserts the installation for (userID, deviceID) and refreshes its
// last-seen timestamp. Called on every successful mobile sign-in.
func (r Repository) Register(ctx context.Context, userID int, deviceID string, platform *string) error {
	now := time.Now()
	row := entity.MobileDevice{
		UserID:     userID,
		DeviceID:   deviceID,
		Platform:   platform,
		CreatedAt:  now,
		LastSeenAt: &now,
	}

	_, err := r.NewInsert().Model(&row).
		On("CONFLICT (user_id, device_id) DO UPDATE").
		Set("last_seen_at = EXCLUDED.last_seen_at").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "registering mobile device")
	}

	return nil
}

// Exists reports whether the installation is registered.
func (r Repository) Exists(ctx context.Context, userID int, deviceID string) (bool, error) {
	exists, err := r.NewSelect().Model((*entity.MobileDevice)(nil)).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "checking mobile device")
	}

	return exists, nil
}

// Touch refreshes the device's last-seen timestamp.
func (r Repository) Touch(ctx context.Context, userID int, deviceID string) error {
	_, err := r.NewUpdate().Table("mobile_device").
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Set("last_seen_at = ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "touching mobile device")
	}

	return nil
}
