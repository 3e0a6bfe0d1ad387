package attendance

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/service/geofence"
)

type fakeEmployees struct {
	known map[int]int // employeeID -> tenantID
}

func (f fakeEmployees) Exists(_ context.Context, tenantID, employeeID int) (bool, error) {
	t, ok := f.known[employeeID]
	return ok && t == tenantID, nil
}

type fakeLocations struct {
	zones map[int][]geofence.Zone
}

func (f fakeLocations) ActiveZones(_ context.Context, tenantID int) ([]geofence.Zone, error) {
	return f.zones[tenantID], nil
}

type fakePolicies struct {
	policies map[int]entity.TenantAttendancePolicy
}

func (f fakePolicies) GetByTenant(_ context.Context, tenantID int) (entity.TenantAttendancePolicy, error) {
	if p, ok := f.policies[tenantID]; ok {
		return p, nil
	}
	return entity.DefaultPolicy(tenantID), nil
}

type fixture struct {
	engine  *Engine
	records *InMemoryRecordStore
	now     time.Time
	clock   *time.Time
}

func newFixture(t *testing.T, policy *entity.TenantAttendancePolicy, zones []geofence.Zone) *fixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := now

	employees := fakeEmployees{known: map[int]int{10: 1, 11: 1}}
	locations := fakeLocations{zones: map[int][]geofence.Zone{1: zones}}
	policies := fakePolicies{policies: map[int]entity.TenantAttendancePolicy{}}
	if policy != nil {
		policies.policies[1] = *policy
	}

	records := NewInMemoryRecordStore()
	engine := NewEngine(employees, locations, policies, records,
		WithClock(func() time.Time { return clock }),
		WithLocation(time.UTC),
	)

	// f.clock addresses the same variable the WithClock closure reads, so
	// tests can move time forward.
	return &fixture{engine: engine, records: records, now: now, clock: &clock}
}

func float64p(v float64) *float64 { return &v }

var riyadhZone = geofence.Zone{
	ID:           42,
	Name:         "HQ",
	Center:       geofence.Point{Latitude: 24.7136, Longitude: 46.6753},
	RadiusMeters: 150,
}

func TestCheckInWithoutPolicyOrZones(t *testing.T) {
	f := newFixture(t, nil, nil)

	rec, err := f.engine.Submit(context.Background(), SubmitRequest{
		TenantID:   1,
		EmployeeID: 10,
		Kind:       KindCheckIn,
		Source:     entity.SourceWeb,
	})
	require.NoError(t, err)
	require.NotNil(t, rec.CheckInTime)
	require.Equal(t, entity.AttendanceStatusPresent, rec.Status)
	require.Equal(t, "2025-06-01", rec.WorkDay)
	require.Nil(t, rec.MatchedLocationID)
}

func TestEmployeeFromAnotherTenantIsRejected(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.engine.Submit(context.Background(), SubmitRequest{
		TenantID:   2,
		EmployeeID: 10,
		Kind:       KindCheckIn,
		Source:     entity.SourceWeb,
	})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestCheckOutBeforeCheckInCreatesNothing(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.engine.Submit(context.Background(), SubmitRequest{
		TenantID:   1,
		EmployeeID: 10,
		Kind:       KindCheckOut,
		Source:     entity.SourceWeb,
	})
	require.ErrorIs(t, err, ErrNotCheckedIn)

	rec, err := f.records.GetDay(context.Background(), 1, 10, "2025-06-01")
	require.NoError(t, err)
	require.Nil(t, rec, "failed check-out must not create a record")
}

func TestSecondCheckInLeavesFirstIntact(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	first, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceWeb})
	require.NoError(t, err)

	*f.clock = f.now.Add(30 * time.Minute)

	_, err = f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceWeb})
	require.ErrorIs(t, err, ErrAlreadyCheckedIn)

	stored, err := f.records.GetDay(ctx, 1, 10, "2025-06-01")
	require.NoError(t, err)
	require.True(t, stored.CheckInTime.Equal(*first.CheckInTime), "stored check-in time must be unchanged")
}

func TestConcurrentFirstCheckInsCreateOneRecord(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	const n = 16
	var successes, losers int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile})
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case err == ErrAlreadyCheckedIn:
				atomic.AddInt64(&losers, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, successes, "exactly one concurrent first check-in may win")
	require.EqualValues(t, n-1, losers)
}

func TestGeofencePolicyGates(t *testing.T) {
	ctx := context.Background()
	enforced := &entity.TenantAttendancePolicy{
		TenantID:                  1,
		EnforceGeofence:           true,
		AllowCheckInWithoutCoords: false,
		MaxAccuracyMeters:         50,
	}

	t.Run("no coordinate and policy disallows it", func(t *testing.T) {
		f := newFixture(t, enforced, []geofence.Zone{riyadhZone})
		_, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile})
		require.ErrorIs(t, err, ErrLocationRequired)
	})

	t.Run("no coordinate but policy allows it", func(t *testing.T) {
		relaxed := *enforced
		relaxed.AllowCheckInWithoutCoords = true
		f := newFixture(t, &relaxed, []geofence.Zone{riyadhZone})
		rec, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile})
		require.NoError(t, err)
		require.Nil(t, rec.MatchedLocationID)
	})

	t.Run("accuracy above the ceiling", func(t *testing.T) {
		f := newFixture(t, enforced, []geofence.Zone{riyadhZone})
		_, err := f.engine.Submit(ctx, SubmitRequest{
			TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
			Coordinate: &geofence.Point{Latitude: 24.7140, Longitude: 46.6755},
			Accuracy:   float64p(80),
		})
		require.ErrorIs(t, err, ErrLocationTooInaccurate)
	})

	t.Run("zero active zones is a configuration error", func(t *testing.T) {
		f := newFixture(t, enforced, nil)
		_, err := f.engine.Submit(ctx, SubmitRequest{
			TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
			Coordinate: &geofence.Point{Latitude: 24.7140, Longitude: 46.6755},
			Accuracy:   float64p(20),
		})
		require.ErrorIs(t, err, ErrNoZonesConfigured, "must be distinct from outside-geofence")
	})

	t.Run("outside all zones", func(t *testing.T) {
		f := newFixture(t, enforced, []geofence.Zone{riyadhZone})
		_, err := f.engine.Submit(ctx, SubmitRequest{
			TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
			Coordinate: &geofence.Point{Latitude: 24.9, Longitude: 46.9},
			Accuracy:   float64p(20),
		})
		require.ErrorIs(t, err, ErrOutsideGeofence)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		f := newFixture(t, enforced, []geofence.Zone{riyadhZone})
		_, err := f.engine.Submit(ctx, SubmitRequest{
			TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
			Coordinate: &geofence.Point{Latitude: 120, Longitude: 46.9},
		})
		require.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}

// Full day: enforced geofence check-in inside the zone, duplicate rejected,
// check-out far away still succeeds and freezes the derived minutes.
func TestFullDayScenario(t *testing.T) {
	ctx := context.Background()
	policy := &entity.TenantAttendancePolicy{
		TenantID:                  1,
		EnforceGeofence:           true,
		AllowCheckInWithoutCoords: false,
		MaxAccuracyMeters:         50,
	}
	f := newFixture(t, policy, []geofence.Zone{riyadhZone})

	rec, err := f.engine.Submit(ctx, SubmitRequest{
		TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
		Coordinate: &geofence.Point{Latitude: 24.7140, Longitude: 46.6755},
		Accuracy:   float64p(20),
	})
	require.NoError(t, err)
	require.NotNil(t, rec.MatchedLocationID)
	require.Equal(t, riyadhZone.ID, *rec.MatchedLocationID)

	_, err = f.engine.Submit(ctx, SubmitRequest{
		TenantID: 1, EmployeeID: 10, Kind: KindCheckIn, Source: entity.SourceMobile,
		Coordinate: &geofence.Point{Latitude: 24.7140, Longitude: 46.6755},
		Accuracy:   float64p(20),
	})
	require.ErrorIs(t, err, ErrAlreadyCheckedIn)

	*f.clock = f.now.Add(8*time.Hour + 45*time.Minute)

	out, err := f.engine.Submit(ctx, SubmitRequest{
		TenantID: 1, EmployeeID: 10, Kind: KindCheckOut, Source: entity.SourceMobile,
		Coordinate: &geofence.Point{Latitude: 24.9, Longitude: 46.9}, // off-site, not re-validated
		Accuracy:   float64p(20),
	})
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	require.NotNil(t, out.TotalWorkMinutes)
	require.Equal(t, 8*60+45, *out.TotalWorkMinutes)
	require.Nil(t, out.CheckOutLocationID, "off-site check-out matches no zone")

	_, err = f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 10, Kind: KindCheckOut, Source: entity.SourceMobile})
	require.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestConcurrentCheckOutsSingleWinner(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	_, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 11, Kind: KindCheckIn, Source: entity.SourceWeb})
	require.NoError(t, err)

	*f.clock = f.now.Add(time.Hour)

	const n = 8
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.engine.Submit(ctx, SubmitRequest{TenantID: 1, EmployeeID: 11, Kind: KindCheckOut, Source: entity.SourceWeb}); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, successes, "check-out must transition exactly once")
}
