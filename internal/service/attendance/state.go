package attendance

import (
	"hrms/backend/internal/entity"
)

// State is the day-scoped position of one (tenant, employee, date) in the
// NONE -> CHECKED_IN -> CHECKED_OUT machine. CHECKED_OUT is terminal for the
// day.
type State int

const (
	StateNone State = iota
	StateCheckedIn
	StateCheckedOut
)

func (s State) String() string {
	switch s {
	case StateCheckedIn:
		return "CHECKED_IN"
	case StateCheckedOut:
		return "CHECKED_OUT"
	default:
		return "NONE"
	}
}

// StateOf reconstructs the day state from a stored record. A nil record is
// StateNone.
func StateOf(rec *entity.AttendanceRecord) State {
	switch {
	case rec == nil || rec.CheckInTime == nil:
		return StateNone
	case rec.CheckOutTime != nil:
		return StateCheckedOut
	default:
		return StateCheckedIn
	}
}

// CheckInAllowed is the pure transition guard for NONE -> CHECKED_IN.
func CheckInAllowed(s State) error {
	if s != StateNone {
		return ErrAlreadyCheckedIn
	}
	return nil
}

// CheckOutAllowed is the pure transition guard for CHECKED_IN -> CHECKED_OUT.
func CheckOutAllowed(s State) error {
	switch s {
	case StateNone:
		return ErrNotCheckedIn
	case StateCheckedOut:
		return ErrAlreadyCheckedOut
	default:
		return nil
	}
}
