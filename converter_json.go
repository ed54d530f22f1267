package osm2streets

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// WriteJSON writes streets as JSON array: [{"name", "date", "segments": [[{"lat", "lon"}, ...], ...]}, ...]
func WriteJSON(w io.Writer, geoms []StreetGeometry) error {
	encoder := json.NewEncoder(w)
	err := encoder.Encode(geoms)
	if err != nil {
		return errors.Wrap(err, "Can't encode streets")
	}
	return nil
}
