package osm2streets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ReadStreetsCSV reads street list in `name;date` format. Blank lines are skipped, extra columns are ignored
func ReadStreetsCSV(r io.Reader) ([]Street, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	streets := []Street{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "Can't read street list")
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected 'name;date', got %d field(s)", line, len(record))
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty street name", line)
		}
		streets = append(streets, Street{
			Name: name,
			Date: strings.TrimSpace(record[1]),
		})
	}
	return streets, nil
}
