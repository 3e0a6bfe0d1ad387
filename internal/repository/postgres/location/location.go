package location

import (
	"context"
	"net/http"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/service/geofence"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// ActiveZones lists the tenant's active work locations as geofence zones in
// creation order. The engine treats an empty result as "nothing configured",
// so inactive rows are filtered here, not there.
func (r Repository) ActiveZones(ctx context.Context, tenantID int) ([]geofence.Zone, error) {
	var locations []entity.TenantWorkLocation

	err := r.NewSelect().Model(&locations).
		Where("tenant_id = ? AND is_active AND deleted_at IS NULL", tenantID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "selecting active work locations")
	}

	zones := make([]geofence.Zone, 0, len(locations))
	for _, l := range locations {
		zones = append(zones, geofence.Zone{
			ID:           l.ID,
			Name:         l.Name,
			Center:       geofence.Point{Latitude: l.Latitude, Longitude: l.Longitude},
			RadiusMeters: l.RadiusMeters,
		})
	}

	return zones, nil
}

func (r Repository) GetList(ctx context.Context, tenantID int) ([]entity.TenantWorkLocation, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	var list []entity.TenantWorkLocation

	err := r.NewSelect().Model(&list).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting work locations"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.TenantWorkLocation, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return entity.TenantWorkLocation{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Latitude", "Longitude", "RadiusMeters"); err != nil {
		return entity.TenantWorkLocation{}, err
	}

	detail := entity.TenantWorkLocation{
		TenantID:     request.TenantID,
		Name:         *request.Name,
		Latitude:     *request.Latitude,
		Longitude:    *request.Longitude,
		RadiusMeters: *request.RadiusMeters,
		IsActive:     true,
	}
	detail.CreatedAt = time.Now()
	detail.CreatedBy = &claims.UserId

	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.TenantWorkLocation{}, web.NewRequestError(errors.Wrap(err, "creating work location"), http.StatusBadRequest)
	}

	return detail, nil
}

// UpdateColumns patches the fields present in the request, most commonly
// flipping is_active.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("work_location").
		Where("deleted_at IS NULL AND id = ? AND tenant_id = ?", request.ID, request.TenantID)

	if request.Name != nil {
		q.Set("name = ?", *request.Name)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", *request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", *request.Longitude)
	}
	if request.RadiusMeters != nil {
		q.Set("radius_meters = ?", *request.RadiusMeters)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", *request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err := q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating work location"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, tenantID, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	exists, err := r.NewSelect().Model((*entity.TenantWorkLocation)(nil)).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", id, tenantID).
		Exists(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking work location"), http.StatusInternalServerError)
	}
	if !exists {
		return web.NewRequestError(errors.New("work location not found"), http.StatusNotFound)
	}

	return r.DeleteRow(ctx, "work_location", id)
}
