package osm2streets

import (
	"encoding/csv"
	"io"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// PrepareWKTMultiLinestring returns WKT representation of street segments
func PrepareWKTMultiLinestring(sg StreetGeometry) string {
	return wkt.MarshalString(sg.MultiLineString())
}

// WriteWKT writes streets as 'Comma-Separated Values' (';' is the separator): name;date;geom
func WriteWKT(w io.Writer, geoms []StreetGeometry) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	// 		name - string, street name as it was supplied
	// 		date - string, street date as it was supplied
	//      geom - WKT MULTILINESTRING (lon lat)
	err := writer.Write([]string{"name", "date", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := range geoms {
		err = writer.Write([]string{
			geoms[i].Name,
			geoms[i].Date,
			PrepareWKTMultiLinestring(geoms[i]),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write street")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush streets")
}
