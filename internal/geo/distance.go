// Package geo provides great-circle distance computation on a
// spherical-Earth approximation.
package geo

import "math"

// earthRadiusKm is the mean Earth radius in kilometers.
const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees, using the haversine formula.
// It is symmetric and returns zero for coincident points. Inputs are
// assumed to be finite values in valid latitude/longitude ranges;
// validation belongs to the caller.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * earthRadiusKm
}

// RoundKm rounds a distance to two decimal places for client display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
