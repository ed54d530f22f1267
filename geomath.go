package osm2streets

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKM is the sphere radius used by GreatCircleDistance
	EarthRadiusKM = 6372.8
	pi180         = math.Pi / 180.0
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// GreatCircleDistance returns distance between two geo-points (kilometers)
//
// Chord form: both points are placed on the unit sphere (with p rotated by the longitude difference),
// the straight-line chord between them is measured and turned back into an arc length.
func GreatCircleDistance(p, q GeoPoint) float64 {
	lat1 := degreesToRadians(p.Lat)
	lat2 := degreesToRadians(q.Lat)
	diffLon := degreesToRadians(p.Lon - q.Lon)
	dz := math.Sin(lat1) - math.Sin(lat2)
	dx := math.Cos(diffLon)*math.Cos(lat1) - math.Cos(lat2)
	dy := math.Sin(diffLon) * math.Cos(lat1)
	return 2 * EarthRadiusKM * math.Asin(math.Sqrt(dx*dx+dy*dy+dz*dz)/2)
}

// SphericalLength returns length for given line (kilometers)
func SphericalLength(line []GeoPoint) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += GreatCircleDistance(line[i-1], line[i])
	}
	return totalLength
}

