package attendance

import (
	"context"

	"hrms/backend/internal/entity"
	attendance_repo "hrms/backend/internal/repository/postgres/attendance"
	"hrms/backend/internal/service/attendance"
)

// Submitter runs one submission through the engine's state machine.
type Submitter interface {
	Submit(ctx context.Context, req attendance.SubmitRequest) (*entity.AttendanceRecord, error)
}

// DayReader loads the caller's record for the current work day.
type DayReader interface {
	GetTodayByEmployee(ctx context.Context, tenantID, employeeID int, workDay string) (attendance_repo.GetDayResponse, error)
}

// ChallengeConsumer claims a mobile nonce before a submission may run.
type ChallengeConsumer interface {
	Consume(ctx context.Context, nonce string, userID int, deviceID string) error
}
