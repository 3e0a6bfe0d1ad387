package entity

import (
	"github.com/uptrace/bun"
)

// Default policy values used when a tenant has no stored row.
const (
	DefaultMaxAccuracyMeters = 50
)

// TenantAttendancePolicy configures how check-in submissions are judged for
// one tenant. Absent rows mean the defaults: geofence off, location optional,
// 50m accuracy ceiling.
type TenantAttendancePolicy struct {
	bun.BaseModel `bun:"table:attendance_policy"`

	BasicEntity
	TenantID                  int  `json:"tenant_id"                     bun:"tenant_id"`
	EnforceGeofence           bool `json:"enforce_geofence"              bun:"enforce_geofence"`
	AllowCheckInWithoutCoords bool `json:"allow_check_in_without_coords" bun:"allow_check_in_without_coords"`
	MaxAccuracyMeters         int  `json:"max_accuracy_meters"           bun:"max_accuracy_meters"`
}

// DefaultPolicy synthesizes the policy used for tenants that never saved one.
func DefaultPolicy(tenantID int) TenantAttendancePolicy {
	return TenantAttendancePolicy{
		TenantID:                  tenantID,
		EnforceGeofence:           false,
		AllowCheckInWithoutCoords: true,
		MaxAccuracyMeters:         DefaultMaxAccuracyMeters,
	}
}
