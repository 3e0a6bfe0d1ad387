package policy

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByTenant resolves the tenant policy. Tenants that never saved one get
// the defaults; nothing is persisted on the read path.
func (r Repository) GetByTenant(ctx context.Context, tenantID int) (entity.TenantAttendancePolicy, error) {
	var detail entity.TenantAttendancePolicy

	err := r.NewSelect().Model(&detail).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.DefaultPolicy(tenantID), nil
	}
	if err != nil {
		return entity.TenantAttendancePolicy{}, errors.Wrap(err, "selecting attendance policy")
	}

	return detail, nil
}

// Upsert writes the tenant policy with partial-field semantics: fields the
// request leaves nil keep their previous (or default) values.
func (r Repository) Upsert(ctx context.Context, request UpsertRequest) (entity.TenantAttendancePolicy, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.TenantAttendancePolicy{}, err
	}

	current, err := r.GetByTenant(ctx, request.TenantID)
	if err != nil {
		return entity.TenantAttendancePolicy{}, err
	}

	if request.EnforceGeofence != nil {
		current.EnforceGeofence = *request.EnforceGeofence
	}
	if request.AllowCheckInWithoutCoords != nil {
		current.AllowCheckInWithoutCoords = *request.AllowCheckInWithoutCoords
	}
	if request.MaxAccuracyMeters != nil {
		current.MaxAccuracyMeters = *request.MaxAccuracyMeters
	}

	now := time.Now()
	if current.ID == 0 {
		current.CreatedAt = now
		current.CreatedBy = &claims.UserId

		_, err = r.NewInsert().Model(&current).
			On("CONFLICT (tenant_id) DO UPDATE").
			Set("enforce_geofence = EXCLUDED.enforce_geofence").
			Set("allow_check_in_without_coords = EXCLUDED.allow_check_in_without_coords").
			Set("max_accuracy_meters = EXCLUDED.max_accuracy_meters").
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
	} else {
		current.UpdatedAt = &now
		current.UpdatedBy = &claims.UserId

		_, err = r.NewUpdate().Model(&current).
			WherePK().
			Exec(ctx)
	}
	if err != nil {
		return entity.TenantAttendancePolicy{}, web.NewRequestError(errors.Wrap(err, "upserting attendance policy"), http.StatusBadRequest)
	}

	return current, nil
}
