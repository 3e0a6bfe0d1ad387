package user

import (
	"context"
	"database/sql"
	"net/http"

	"hrms/backend/foundation/web"
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

// Exists reports whether the employee belongs to the tenant. The engine's
// NotFound outcome hangs on this answer.
func (r Repository) Exists(ctx context.Context, tenantID, employeeID int) (bool, error) {
	exists, err := r.NewSelect().Model((*entity.User)(nil)).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", employeeID, tenantID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "checking employee existence")
	}

	return exists, nil
}

// GetByEmployeeID looks an employee up by their tenant-scoped badge id, used
// on sign-in.
func (r Repository) GetByEmployeeID(ctx context.Context, tenantID int, employeeID string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("employee_id = ? AND tenant_id = ? AND deleted_at IS NULL", employeeID, tenantID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found"),
			Status: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	return detail, nil
}

// GetByID resolves the owner of a rotated refresh token.
func (r Repository) GetByID(ctx context.Context, id int) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found"),
			Status: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return entity.User{}, web.NewRequestError(errors.Wrap(err, "selecting employee"), http.StatusInternalServerError)
	}

	return detail, nil
}
