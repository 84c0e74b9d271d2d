package service

import "math"

const (
	earthRadiusMeters = 6371e3
	// MaxLocationDistanceMeters is how close a player must stand to an
	// "anweisung" checkpoint.
	MaxLocationDistanceMeters = 30.0
)

// DistanceMeters is the haversine great-circle distance.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
