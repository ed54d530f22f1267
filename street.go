package osm2streets

import (
	"github.com/paulmach/orb"
)

// Street is an entry of caller supplied street list. Date is kept as is
type Street struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// StreetGeometry is resolved street: name, date and surviving segments in order they've been met in extract
type StreetGeometry struct {
	Name     string       `json:"name"`
	Date     string       `json:"date"`
	Segments [][]GeoPoint `json:"segments"`
}

// MultiLineString returns orb representation of street segments (X == Lon, Y == Lat)
func (sg StreetGeometry) MultiLineString() orb.MultiLineString {
	mls := make(orb.MultiLineString, len(sg.Segments))
	for i, segment := range sg.Segments {
		line := make(orb.LineString, len(segment))
		for j, pt := range segment {
			line[j] = orb.Point{pt.Lon, pt.Lat}
		}
		mls[i] = line
	}
	return mls
}

// Length returns total length of all segments (kilometers)
func (sg StreetGeometry) Length() float64 {
	total := 0.0
	for _, segment := range sg.Segments {
		total += SphericalLength(segment)
	}
	return total
}

// NumPoints returns number of points across all segments
func (sg StreetGeometry) NumPoints() int {
	total := 0
	for _, segment := range sg.Segments {
		total += len(segment)
	}
	return total
}
