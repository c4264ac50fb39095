// Package geo holds the great-circle distance used for check-in gating and nearby searches.
package geo

import "math"

const EarthRadiusKm = 6371

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within latitude [-90, 90] and longitude [-180, 180].
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return math.Abs(c.Latitude) <= 90 && math.Abs(c.Longitude) <= 180
}

// Distance returns the haversine distance between a and b in kilometres.
func Distance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	h = math.Min(1, h)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
