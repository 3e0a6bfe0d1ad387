package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses.
const (
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusAbsent  = "ABSENT"
)

// Submission sources.
const (
	SourceWeb    = "web"
	SourceMobile = "mobile"
	SourceKiosk  = "kiosk"
)

// AttendanceRecord is the day-scoped attendance row. At most one row exists
// per (tenant_id, employee_id, work_day); the unique index in the migration
// enforces it.
type AttendanceRecord struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	TenantID   int    `json:"tenant_id"   bun:"tenant_id"`
	EmployeeID int    `json:"employee_id" bun:"employee_id"`
	WorkDay    string `json:"work_day"    bun:"work_day"`

	CheckInTime       *time.Time `json:"check_in_time"        bun:"check_in_time"`
	CheckInSource     *string    `json:"check_in_source"      bun:"check_in_source"`
	CheckInLatitude   *float64   `json:"check_in_latitude"    bun:"check_in_latitude"`
	CheckInLongitude  *float64   `json:"check_in_longitude"   bun:"check_in_longitude"`
	CheckInAccuracy   *float64   `json:"check_in_accuracy"    bun:"check_in_accuracy"`
	CheckInAddress    *string    `json:"check_in_address"     bun:"check_in_address"`
	MatchedLocationID *int       `json:"matched_location_id"  bun:"matched_location_id"`

	CheckOutTime       *time.Time `json:"check_out_time"          bun:"check_out_time"`
	CheckOutSource     *string    `json:"check_out_source"        bun:"check_out_source"`
	CheckOutLatitude   *float64   `json:"check_out_latitude"      bun:"check_out_latitude"`
	CheckOutLongitude  *float64   `json:"check_out_longitude"     bun:"check_out_longitude"`
	CheckOutAccuracy   *float64   `json:"check_out_accuracy"      bun:"check_out_accuracy"`
	CheckOutAddress    *string    `json:"check_out_address"       bun:"check_out_address"`
	CheckOutLocationID *int       `json:"check_out_location_id"   bun:"check_out_location_id"`

	TotalWorkMinutes *int   `json:"total_work_minutes" bun:"total_work_minutes"`
	Status           string `json:"status"             bun:"status"`
}
