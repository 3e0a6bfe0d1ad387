// Package attendance implements the submission engine: the day-scoped
// check-in/check-out state machine behind per-tenant geofence policy. Every
// external caller, web session or mobile app, ultimately goes through
// Engine.Submit.
package attendance

import (
	"context"
	"time"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/service/geofence"
)

// Kind selects the transition a submission requests.
type Kind string

const (
	KindCheckIn  Kind = "check-in"
	KindCheckOut Kind = "check-out"
)

// WorkDayFormat is the date-only key of an attendance record.
const WorkDayFormat = "2006-01-02"

// SubmitRequest is the normalized submission both request shapes reduce to.
type SubmitRequest struct {
	TenantID   int
	EmployeeID int
	Kind       Kind
	Source     string
	Coordinate *geofence.Point
	Accuracy   *float64
	Address    *string
}

// EmployeeDirectory answers whether an employee belongs to a tenant.
type EmployeeDirectory interface {
	Exists(ctx context.Context, tenantID, employeeID int) (bool, error)
}

// LocationDirectory lists a tenant's active work-location zones in stable
// order.
type LocationDirectory interface {
	ActiveZones(ctx context.Context, tenantID int) ([]geofence.Zone, error)
}

// PolicyStore resolves the tenant attendance policy, synthesizing defaults
// when the tenant never saved one.
type PolicyStore interface {
	GetByTenant(ctx context.Context, tenantID int) (entity.TenantAttendancePolicy, error)
}

// CheckOutUpdate carries the mutation applied when a day transitions to
// CHECKED_OUT. The store computes total work minutes at claim time so the
// value is written exactly once.
type CheckOutUpdate struct {
	Time              time.Time
	Source            string
	Latitude          *float64
	Longitude         *float64
	Accuracy          *float64
	Address           *string
	MatchedLocationID *int
}

// RecordStore is the storage boundary. Both writes are atomic conditional
// operations: CreateCheckIn loses a race to the unique day key with
// ErrAlreadyCheckedIn, CompleteCheckOut claims the unset check_out_time or
// reports the precise state violation.
type RecordStore interface {
	GetDay(ctx context.Context, tenantID, employeeID int, workDay string) (*entity.AttendanceRecord, error)
	CreateCheckIn(ctx context.Context, rec *entity.AttendanceRecord) error
	CompleteCheckOut(ctx context.Context, tenantID, employeeID int, workDay string, upd CheckOutUpdate) (*entity.AttendanceRecord, error)
}

// Engine orchestrates policy resolution, geofence evaluation and the day
// state machine.
type Engine struct {
	employees EmployeeDirectory
	locations LocationDirectory
	policies  PolicyStore
	records   RecordStore

	now func() time.Time
	loc *time.Location
}

// Option tweaks engine construction; used by tests to pin the clock.
type Option func(*Engine)

// WithClock replaces the engine's clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the timezone that determines the employee's calendar
// date at submission time.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

func NewEngine(employees EmployeeDirectory, locations LocationDirectory, policies PolicyStore, records RecordStore, opts ...Option) *Engine {
	e := &Engine{
		employees: employees,
		locations: locations,
		policies:  policies,
		records:   records,
		now:       time.Now,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit runs one check-in or check-out transition. It returns the updated
// record or one of the typed errors in errors.go; a failed transition never
// mutates stored state.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*entity.AttendanceRecord, error) {
	ok, err := e.employees.Exists(ctx, req.TenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmployeeNotFound
	}

	if req.Coordinate != nil && !req.Coordinate.Valid() {
		return nil, ErrInvalidCoordinate
	}

	now := e.now()
	workDay := now.In(e.loc).Format(WorkDayFormat)

	switch req.Kind {
	case KindCheckIn:
		return e.checkIn(ctx, req, now, workDay)
	case KindCheckOut:
		return e.checkOut(ctx, req, now, workDay)
	default:
		return nil, ErrInvalidKind
	}
}

func (e *Engine) checkIn(ctx context.Context, req SubmitRequest, now time.Time, workDay string) (*entity.AttendanceRecord, error) {
	policy, err := e.policies.GetByTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	matchedID, err := e.evaluateGeofence(ctx, req, policy)
	if err != nil {
		return nil, err
	}

	checkIn := now
	source := req.Source
	rec := &entity.AttendanceRecord{
		TenantID:          req.TenantID,
		EmployeeID:        req.EmployeeID,
		WorkDay:           workDay,
		CheckInTime:       &checkIn,
		CheckInSource:     &source,
		CheckInAddress:    req.Address,
		CheckInAccuracy:   req.Accuracy,
		MatchedLocationID: matchedID,
		Status:            entity.AttendanceStatusPresent,
	}
	if req.Coordinate != nil {
		rec.CheckInLatitude = &req.Coordinate.Latitude
		rec.CheckInLongitude = &req.Coordinate.Longitude
	}

	if err := e.records.CreateCheckIn(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (e *Engine) checkOut(ctx context.Context, req SubmitRequest, now time.Time, workDay string) (*entity.AttendanceRecord, error) {
	// Check-out never re-validates zone membership: employees may
	// legitimately leave the site before the end of shift. The matched zone
	// is still recorded when the coordinate happens to fall in one.
	var matchedID *int
	if req.Coordinate != nil {
		zones, err := e.locations.ActiveZones(ctx, req.TenantID)
		if err != nil {
			return nil, err
		}
		if id, ok := geofence.Match(*req.Coordinate, zones); ok {
			matchedID = &id
		}
	}

	upd := CheckOutUpdate{
		Time:              now,
		Source:            req.Source,
		Accuracy:          req.Accuracy,
		Address:           req.Address,
		MatchedLocationID: matchedID,
	}
	if req.Coordinate != nil {
		upd.Latitude = &req.Coordinate.Latitude
		upd.Longitude = &req.Coordinate.Longitude
	}

	return e.records.CompleteCheckOut(ctx, req.TenantID, req.EmployeeID, workDay, upd)
}

// evaluateGeofence applies the tenant policy to the check-in coordinate and
// returns the matched zone id, if any.
func (e *Engine) evaluateGeofence(ctx context.Context, req SubmitRequest, policy entity.TenantAttendancePolicy) (*int, error) {
	if !policy.EnforceGeofence {
		// No enforcement; still record a matched zone when one contains the
		// point.
		if req.Coordinate == nil {
			return nil, nil
		}
		zones, err := e.locations.ActiveZones(ctx, req.TenantID)
		if err != nil {
			return nil, err
		}
		if id, ok := geofence.Match(*req.Coordinate, zones); ok {
			return &id, nil
		}
		return nil, nil
	}

	if req.Coordinate == nil {
		if policy.AllowCheckInWithoutCoords {
			return nil, nil
		}
		return nil, ErrLocationRequired
	}

	if req.Accuracy != nil && *req.Accuracy > float64(policy.MaxAccuracyMeters) {
		return nil, ErrLocationTooInaccurate
	}

	zones, err := e.locations.ActiveZones(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, ErrNoZonesConfigured
	}

	id, ok := geofence.Match(*req.Coordinate, zones)
	if !ok {
		return nil, ErrOutsideGeofence
	}

	return &id, nil
}

// TotalWorkMinutes computes the derived duration written once at check-out.
func TotalWorkMinutes(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / time.Minute)
}
