package attendance

import (
	"net/http"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

// GetDayResponse is the day record as the dashboard and mobile app read it.
type GetDayResponse struct {
	ID                int        `json:"id"`
	EmployeeID        int        `json:"employee_id"`
	WorkDay           *date.Date `json:"work_day"`
	Status            string     `json:"status"`
	CheckInTime       *time.Time `json:"check_in_time,omitempty"`
	CheckInSource     *string    `json:"check_in_source,omitempty"`
	MatchedLocationID *int       `json:"matched_location_id,omitempty"`
	CheckOutTime      *time.Time `json:"check_out_time,omitempty"`
	CheckOutSource    *string    `json:"check_out_source,omitempty"`
	TotalWorkMinutes  *int       `json:"total_work_minutes,omitempty"`
}

func newGetDayResponse(rec *entity.AttendanceRecord) (GetDayResponse, error) {
	workDay, err := date.ParseDate(rec.WorkDay)
	if err != nil {
		return GetDayResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusInternalServerError)
	}

	return GetDayResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		WorkDay:           &workDay,
		Status:            rec.Status,
		CheckInTime:       rec.CheckInTime,
		CheckInSource:     rec.CheckInSource,
		MatchedLocationID: rec.MatchedLocationID,
		CheckOutTime:      rec.CheckOutTime,
		CheckOutSource:    rec.CheckOutSource,
		TotalWorkMinutes:  rec.TotalWorkMinutes,
	}, nil
}
