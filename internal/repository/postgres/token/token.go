package token

import (
	"context"
	"database/sql"
	"time"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Repository is the durable token.Store. Rotation runs inside a transaction
// whose conditional revoke serializes against concurrent rotation and
// revocation of the same hash, so a revoked token is never resurrected.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Replace(ctx context.Context, t *entity.RefreshToken) error {
	err := r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*entity.RefreshToken)(nil)).
			Where("user_id = ? AND device_id = ? AND revoked_at IS NULL", t.UserID, t.DeviceID).
			Set("revoked_at = ?", time.Now()).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "revoking current refresh token")
		}

		if _, err := tx.NewInsert().Model(t).Exec(ctx); err != nil {
			return errors.Wrap(err, "inserting refresh token")
		}

		return nil
	})

	return err
}

func (r Repository) Rotate(ctx context.Context, oldHash string, id uuid.UUID, newHash string, expiresAt time.Time) (*entity.RefreshToken, error) {
	var next *entity.RefreshToken

	err := r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		// Claim the old token. Zero rows means it is unknown, expired, or
		// already revoked; the rotation loses either way.
		var old entity.RefreshToken
		res, err := tx.NewUpdate().Model(&old).
			Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", oldHash, now).
			Set("revoked_at = ?", now).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "revoking rotated refresh token")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "checking rotated rows")
		}
		if rows == 0 {
			return nil
		}

		next = &entity.RefreshToken{
			ID:        id,
			UserID:    old.UserID,
			DeviceID:  old.DeviceID,
			TokenHash: newHash,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		}

		if _, err := tx.NewInsert().Model(next).Exec(ctx); err != nil {
			return errors.Wrap(err, "inserting rotated refresh token")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

func (r Repository) Revoke(ctx context.Context, hash string, deviceID string) error {
	_, err := r.NewUpdate().Model((*entity.RefreshToken)(nil)).
		Where("token_hash = ? AND device_id = ? AND revoked_at IS NULL", hash, deviceID).
		Set("revoked_at = ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "revoking refresh token")
	}

	return nil
}
