package attendance

import (
	"context"
	"fmt"
	"sync"

	"hrms/backend/internal/entity"
)

// InMemoryRecordStore is a RecordStore backed by a mutex-guarded map. The
// postgres store is the durable implementation; this one backs the engine
// tests and honors the same atomicity contract.
type InMemoryRecordStore struct {
	mu      sync.Mutex
	records map[string]*entity.AttendanceRecord
	nextID  int
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		records: make(map[string]*entity.AttendanceRecord),
		nextID:  1,
	}
}

func dayKey(tenantID, employeeID int, workDay string) string {
	return fmt.Sprintf("%d/%d/%s", tenantID, employeeID, workDay)
}

func (s *InMemoryRecordStore) GetDay(ctx context.Context, tenantID, employeeID int, workDay string) (*entity.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[dayKey(tenantID, employeeID, workDay)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *InMemoryRecordStore) CreateCheckIn(ctx context.Context, rec *entity.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(rec.TenantID, rec.EmployeeID, rec.WorkDay)
	if existing := s.records[key]; existing != nil {
		return CheckInAllowed(StateOf(existing))
	}

	cp := *rec
	cp.ID = s.nextID
	s.nextID++
	s.records[key] = &cp
	rec.ID = cp.ID

	return nil
}

func (s *InMemoryRecordStore) CompleteCheckOut(ctx context.Context, tenantID, employeeID int, workDay string, upd CheckOutUpdate) (*entity.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[dayKey(tenantID, employeeID, workDay)]
	if err := CheckOutAllowed(StateOf(rec)); err != nil {
		return nil, err
	}

	out := upd.Time
	total := TotalWorkMinutes(*rec.CheckInTime, out)
	source := upd.Source

	rec.CheckOutTime = &out
	rec.CheckOutSource = &source
	rec.CheckOutLatitude = upd.Latitude
	rec.CheckOutLongitude = upd.Longitude
	rec.CheckOutAccuracy = upd.Accuracy
	rec.CheckOutAddress = upd.Address
	rec.CheckOutLocationID = upd.MatchedLocationID
	rec.TotalWorkMinutes = &total

	cp := *rec
	return &cp, nil
}
