package attendance

import (
	"testing"
	"time"

	"hrms/backend/internal/entity"
)

func TestStateOf(t *testing.T) {
	now := time.Now()

	if s := StateOf(nil); s != StateNone {
		t.Fatalf("nil record: got %v, want NONE", s)
	}

	in := &entity.AttendanceRecord{CheckInTime: &now}
	if s := StateOf(in); s != StateCheckedIn {
		t.Fatalf("checked-in record: got %v, want CHECKED_IN", s)
	}

	out := &entity.AttendanceRecord{CheckInTime: &now, CheckOutTime: &now}
	if s := StateOf(out); s != StateCheckedOut {
		t.Fatalf("checked-out record: got %v, want CHECKED_OUT", s)
	}
}

func TestTransitionGuards(t *testing.T) {
	if err := CheckInAllowed(StateNone); err != nil {
		t.Fatalf("NONE must allow check-in, got %v", err)
	}
	if err := CheckInAllowed(StateCheckedIn); err != ErrAlreadyCheckedIn {
		t.Fatalf("CHECKED_IN check-in: got %v, want ErrAlreadyCheckedIn", err)
	}
	if err := CheckInAllowed(StateCheckedOut); err != ErrAlreadyCheckedIn {
		t.Fatalf("CHECKED_OUT check-in: got %v, want ErrAlreadyCheckedIn", err)
	}

	if err := CheckOutAllowed(StateNone); err != ErrNotCheckedIn {
		t.Fatalf("NONE check-out: got %v, want ErrNotCheckedIn", err)
	}
	if err := CheckOutAllowed(StateCheckedIn); err != nil {
		t.Fatalf("CHECKED_IN must allow check-out, got %v", err)
	}
	if err := CheckOutAllowed(StateCheckedOut); err != ErrAlreadyCheckedOut {
		t.Fatalf("CHECKED_OUT check-out: got %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestTotalWorkMinutesFloors(t *testing.T) {
	in := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		out  time.Time
		want int
	}{
		{in.Add(59 * time.Second), 0},
		{in.Add(time.Minute), 1},
		{in.Add(8*time.Hour + 45*time.Minute + 59*time.Second), 8*60 + 45},
	}

	for _, tc := range cases {
		if got := TotalWorkMinutes(in, tc.out); got != tc.want {
			t.Errorf("TotalWorkMinutes(..., %v) = %d, want %d", tc.out, got, tc.want)
		}
	}
}
