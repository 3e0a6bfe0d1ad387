package policy

import (
	"context"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/repository/postgres/policy"
)

// Policy reads and writes the tenant attendance policy.
type Policy interface {
	GetByTenant(ctx context.Context, tenantID int) (entity.TenantAttendancePolicy, error)
	Upsert(ctx context.Context, request policy.UpsertRequest) (entity.TenantAttendancePolicy, error)
}
