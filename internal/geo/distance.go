// Package geo provides the great-circle distance used to rank restaurants by
// proximity, plus the normalization applied to stored coordinate pairs.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between two
// coordinate pairs using the haversine formula. Inputs must already be valid
// coordinates; callers are expected to run NormalizeCoords first. The
// function is pure and deterministic.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const toRad = math.Pi / 180.0
	dlat := (lat2 - lat1) * toRad
	dlon := (lon2 - lon1) * toRad
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// NormalizeCoords validates a stored (lat, lng) pair. If the pair is out of
// range as given it is tried swapped, which recovers rows where the two
// columns were filled in the wrong order. When neither orientation is valid
// the pair is treated as absent and (nil, nil) is returned.
func NormalizeCoords(lat, lng *float64) (*float64, *float64) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	la, ln := *lat, *lng
	if math.Abs(la) <= 90 && math.Abs(ln) <= 180 {
		return &la, &ln
	}
	if math.Abs(ln) <= 90 && math.Abs(la) <= 180 {
		return &ln, &la
	}
	return nil, nil
}
