package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// coordinate pairs.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateTransportCostCents estimates the transport cost for a pickup as
// great-circle distance times the configured per-km rate, rounded to the
// nearest paisa. The figure is advisory and moves no points.
func EstimateTransportCostCents(lat1, lng1, lat2, lng2 float64, ratePerKmCents int64) int64 {
	dist := HaversineKm(lat1, lng1, lat2, lng2)
	return int64(math.Round(dist * float64(ratePerKmCents)))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
