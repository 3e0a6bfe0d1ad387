package geofence

import (
	"math"
	"testing"
)

var (
	office  = Point{Latitude: 24.7136, Longitude: 46.6753}
	nearby  = Point{Latitude: 24.7140, Longitude: 46.6755}
	faraway = Point{Latitude: 24.9, Longitude: 46.9}
)

func TestDistanceKnownPoints(t *testing.T) {
	d := Distance(office, nearby)
	// Roughly 49m between the two reference points; the exact value depends
	// on the haversine rounding, so assert a sane band.
	if d < 30 || d > 70 {
		t.Fatalf("unexpected distance between reference points: %.2fm", d)
	}

	if d := Distance(office, office); d != 0 {
		t.Fatalf("distance to self should be zero, got %.6f", d)
	}
}

func TestContainsInclusiveBoundary(t *testing.T) {
	d := Distance(office, nearby)

	onBoundary := Zone{ID: 1, Center: office, RadiusMeters: d}
	if !onBoundary.Contains(nearby) {
		t.Fatal("point at exactly the radius distance must match")
	}

	justInside := Zone{ID: 2, Center: office, RadiusMeters: d - 1}
	if justInside.Contains(nearby) {
		t.Fatal("point one meter beyond the radius must not match")
	}
}

func TestMatchFirstWins(t *testing.T) {
	zones := []Zone{
		{ID: 7, Center: office, RadiusMeters: 150},
		{ID: 9, Center: office, RadiusMeters: 5000},
	}

	id, ok := Match(nearby, zones)
	if !ok {
		t.Fatal("expected a match")
	}
	if id != 7 {
		t.Fatalf("expected the first containing zone (7) to win, got %d", id)
	}
}

func TestMatchNone(t *testing.T) {
	zones := []Zone{
		{ID: 1, Center: office, RadiusMeters: 150},
	}

	if id, ok := Match(faraway, zones); ok {
		t.Fatalf("expected no match, got zone %d", id)
	}

	if _, ok := Match(nearby, nil); ok {
		t.Fatal("expected no match against empty zone list")
	}
}

func TestPointValid(t *testing.T) {
	cases := []struct {
		name  string
		p     Point
		valid bool
	}{
		{"office", office, true},
		{"lat out of range", Point{Latitude: 91, Longitude: 0}, false},
		{"lng out of range", Point{Latitude: 0, Longitude: -181}, false},
		{"nan lat", Point{Latitude: math.NaN(), Longitude: 0}, false},
		{"nan lng", Point{Latitude: 0, Longitude: math.NaN()}, false},
		{"extremes", Point{Latitude: -90, Longitude: 180}, true},
	}

	for _, tc := range cases {
		if got := tc.p.Valid(); got != tc.valid {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.valid)
		}
	}
}
