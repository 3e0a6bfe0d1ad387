package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/service/attendance"

	"github.com/pkg/errors"
)

// Repository is the durable attendance.RecordStore. The unique index on
// (tenant_id, employee_id, work_day) plus the conditional update below give
// the engine its atomicity guarantees.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetDay(ctx context.Context, tenantID, employeeID int, workDay string) (*entity.AttendanceRecord, error) {
	var detail entity.AttendanceRecord

	err := r.NewSelect().Model(&detail).
		Where("tenant_id = ? AND employee_id = ? AND work_day = ?", tenantID, employeeID, workDay).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting attendance day")
	}

	return &detail, nil
}

// CreateCheckIn inserts the day's record. Two concurrent first check-ins
// race on the unique day index; the loser's insert affects zero rows and is
// reported as already-checked-in, never as an overwrite.
func (r Repository) CreateCheckIn(ctx context.Context, rec *entity.AttendanceRecord) error {
	rec.CreatedAt = time.Now()

	res, err := r.NewInsert().Model(rec).
		On("CONFLICT (tenant_id, employee_id, work_day) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "inserting attendance check-in")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking inserted rows")
	}
	if rows == 0 {
		return attendance.ErrAlreadyCheckedIn
	}

	return nil
}

// CompleteCheckOut claims the unset check_out_time with one conditional
// update. Total work minutes are computed inside the statement so the value
// is derived from the winning check-in time and written exactly once.
func (r Repository) CompleteCheckOut(ctx context.Context, tenantID, employeeID int, workDay string, upd attendance.CheckOutUpdate) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord

	res, err := r.NewUpdate().Model(&rec).
		Set("check_out_time = ?", upd.Time).
		Set("check_out_source = ?", upd.Source).
		Set("check_out_latitude = ?", upd.Latitude).
		Set("check_out_longitude = ?", upd.Longitude).
		Set("check_out_accuracy = ?", upd.Accuracy).
		Set("check_out_address = ?", upd.Address).
		Set("check_out_location_id = ?", upd.MatchedLocationID).
		Set("total_work_minutes = floor(extract(epoch from (?::timestamptz - check_in_time)) / 60)::int", upd.Time).
		Set("updated_at = ?", time.Now()).
		Where("tenant_id = ? AND employee_id = ? AND work_day = ?", tenantID, employeeID, workDay).
		Where("check_in_time IS NOT NULL AND check_out_time IS NULL").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "updating attendance check-out")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "checking updated rows")
	}
	if rows == 0 {
		// The claim failed; read the row once more to name the violation.
		existing, err := r.GetDay(ctx, tenantID, employeeID, workDay)
		if err != nil {
			return nil, err
		}
		return nil, attendance.CheckOutAllowed(attendance.StateOf(existing))
	}

	return &rec, nil
}

// GetTodayByEmployee returns the employee's record for the current work day,
// shaped for the attendance controller.
func (r Repository) GetTodayByEmployee(ctx context.Context, tenantID, employeeID int, workDay string) (GetDayResponse, error) {
	rec, err := r.GetDay(ctx, tenantID, employeeID, workDay)
	if err != nil {
		return GetDayResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today's attendance"), http.StatusInternalServerError)
	}
	if rec == nil {
		return GetDayResponse{}, web.NewRequestError(errors.New("no attendance recorded today"), http.StatusNotFound)
	}

	return newGetDayResponse(rec)
}
