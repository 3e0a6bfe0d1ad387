// Package geofence decides whether a coordinate falls inside one of a
// tenant's circular work-location zones.
package geofence

import (
	"math"
)

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the point is a usable coordinate. Validation is the
// caller's gate; Match assumes valid input.
func (p Point) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Zone is a circular geofence: a named center with a radius in meters.
type Zone struct {
	ID           int
	Name         string
	Center       Point
	RadiusMeters float64
}

// Contains reports whether the point lies inside the zone. The boundary is
// inclusive: a point at exactly the radius distance matches.
func (z Zone) Contains(p Point) bool {
	return Distance(p, z.Center) <= z.RadiusMeters
}

// Match returns the id of the first zone containing the point, in the order
// the zones were given. Callers get "contained", not "closest": when zones
// overlap the first match wins.
func Match(p Point, zones []Zone) (int, bool) {
	for _, z := range zones {
		if z.Contains(p) {
			return z.ID, true
		}
	}
	return 0, false
}

// Distance returns the great-circle distance between two points in meters,
// computed with the haversine formula.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
