package policy

// UpsertRequest carries an administrative policy change. Nil fields keep
// their stored values.
type UpsertRequest struct {
	TenantID                  int   `json:"-"`
	EnforceGeofence           *bool `json:"enforce_geofence" form:"enforce_geofence"`
	AllowCheckInWithoutCoords *bool `json:"allow_check_in_without_coords" form:"allow_check_in_without_coords"`
	MaxAccuracyMeters         *int  `json:"max_accuracy_meters" form:"max_accuracy_meters"`
}
