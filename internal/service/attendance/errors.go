package attendance

import "github.com/pkg/errors"

// Typed submission outcomes. Adapters map these to status codes and
// machine-readable error codes; anything else coming out of the engine is a
// storage failure and is treated as fatal.
var (
	// ErrEmployeeNotFound: the employee does not belong to the tenant.
	ErrEmployeeNotFound = errors.New("employee not found in tenant")

	// ErrAlreadyCheckedIn: a check-in exists for the employee-day. The
	// racing loser of two concurrent first check-ins receives this, never a
	// silent overwrite.
	ErrAlreadyCheckedIn = errors.New("already checked in today")

	// ErrNotCheckedIn: check-out submitted with no check-in for the day.
	ErrNotCheckedIn = errors.New("no check-in recorded today")

	// ErrAlreadyCheckedOut: the day already reached its terminal state.
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	// ErrLocationRequired: geofencing is enforced, no coordinate was
	// supplied, and the tenant policy disallows location-less check-in.
	ErrLocationRequired = errors.New("location is required for check-in")

	// ErrLocationTooInaccurate: reported accuracy exceeds the policy
	// ceiling.
	ErrLocationTooInaccurate = errors.New("location accuracy exceeds the allowed maximum")

	// ErrNoZonesConfigured: geofencing is enforced but the tenant has no
	// active work locations. A configuration problem, reported distinctly
	// from a policy violation.
	ErrNoZonesConfigured = errors.New("no active work locations configured")

	// ErrOutsideGeofence: the coordinate matches no active work location.
	ErrOutsideGeofence = errors.New("location is outside all work locations")

	// ErrInvalidCoordinate: the supplied coordinate is NaN or out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidKind: the submission names neither check-in nor check-out.
	ErrInvalidKind = errors.New("invalid submission kind")
)
