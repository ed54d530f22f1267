package osm2streets

import (
	"github.com/paulmach/osm"
)

// pointTable holds coordinates of every node met during the pass
type pointTable map[osm.NodeID]GeoPoint

func newPointTable() pointTable {
	return make(pointTable)
}

// insert adds node coordinates. Node with the same ID overwrites previous one
func (pt pointTable) insert(id osm.NodeID, lat, lon float64) {
	pt[id] = GeoPoint{Lat: lat, Lon: lon}
}

// lookup returns coordinates for given node ID or *MissingPointError
func (pt pointTable) lookup(id osm.NodeID, streetName string) (GeoPoint, error) {
	point, ok := pt[id]
	if !ok {
		return GeoPoint{}, &MissingPointError{StreetName: streetName, NodeID: id}
	}
	return point, nil
}

// resolveSegment converts ordered node ids into ordered points
func (pt pointTable) resolveSegment(ids []osm.NodeID, streetName string) ([]GeoPoint, error) {
	points := make([]GeoPoint, len(ids))
	for i, id := range ids {
		point, err := pt.lookup(id, streetName)
		if err != nil {
			return nil, err
		}
		points[i] = point
	}
	return points, nil
}
