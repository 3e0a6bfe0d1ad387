package location

import (
	"context"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/repository/postgres/location"
)

// Location manages the tenant's work locations.
type Location interface {
	GetList(ctx context.Context, tenantID int) ([]entity.TenantWorkLocation, error)
	Create(ctx context.Context, request location.CreateRequest) (entity.TenantWorkLocation, error)
	UpdateColumns(ctx context.Context, request location.UpdateRequest) error
	Delete(ctx context.Context, tenantID, id int) error
}
