package geo

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// MSLAltitude converts a raw ellipsoid GPS altitude to mean-sea-level
// height using a coarse geoid undulation model. The EGM96 grid is far
// finer than this; a latitude-banded approximation is enough for
// climbing metrics, which only ever compare altitudes to each other.
func MSLAltitude(ellipsoidAlt, lat, lon float64) float64 {
	return ellipsoidAlt - geoidUndulation(lat, lon)
}

func geoidUndulation(lat, lon float64) float64 {
	// Dominant spherical-harmonic terms of the geoid: roughly -30 m at
	// the equator rising toward the poles, with a longitudinal ripple.
	latR := toRad(lat)
	lonR := toRad(lon)
	return -30.0*math.Cos(2*latR) + 10.0*math.Sin(latR)*math.Cos(lonR)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
