package osm2streets

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONFeature returns street as MultiLineString feature with name, date, segments and length_km properties
func PrepareGeoJSONFeature(sg StreetGeometry) *geojson.Feature {
	lines := make([][][]float64, len(sg.Segments))
	for i, segment := range sg.Segments {
		pts2d := make([][]float64, len(segment))
		for j := range segment {
			pts2d[j] = []float64{segment[j].Lon, segment[j].Lat}
		}
		lines[i] = pts2d
	}
	feature := geojson.NewMultiLineStringFeature(lines...)
	feature.SetProperty("name", sg.Name)
	feature.SetProperty("date", sg.Date)
	feature.SetProperty("segments", len(sg.Segments))
	feature.SetProperty("length_km", sg.Length())
	return feature
}

// WriteGeoJSON writes streets as GeoJSON FeatureCollection
func WriteGeoJSON(w io.Writer, geoms []StreetGeometry) error {
	fc := geojson.NewFeatureCollection()
	for i := range geoms {
		fc.AddFeature(PrepareGeoJSONFeature(geoms[i]))
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	_, err = w.Write(b)
	if err != nil {
		return errors.Wrap(err, "Can't write feature collection")
	}
	return nil
}
