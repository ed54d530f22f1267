package osm2streets

import (
	"fmt"

	"github.com/paulmach/osm"
)

// ExtractOpenError is returned when map extract can't be opened (missing file, unreadable file, unknown extension)
type ExtractOpenError struct {
	Filename string
	Err      error
}

func (e *ExtractOpenError) Error() string {
	return fmt.Sprintf("can't open extract '%s': %v", e.Filename, e.Err)
}

func (e *ExtractOpenError) Unwrap() error {
	return e.Err
}

// ExtractFormatError is returned when decoder fails in the middle of the stream
type ExtractFormatError struct {
	Filename string
	Err      error
}

func (e *ExtractFormatError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("corrupted extract: %v", e.Err)
	}
	return fmt.Sprintf("corrupted extract '%s': %v", e.Filename, e.Err)
}

func (e *ExtractFormatError) Unwrap() error {
	return e.Err
}

// MissingPointError is returned when way references node which has never been met in extract
type MissingPointError struct {
	StreetName string
	NodeID     osm.NodeID
}

func (e *MissingPointError) Error() string {
	return fmt.Sprintf("street '%s' references missing node with id: %d", e.StreetName, e.NodeID)
}

// DuplicateNameError is returned in strict mode when two streets share the same normalized name
type DuplicateNameError struct {
	Name  string
	Key   string
	First int
	Index int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("street '%s' (#%d) duplicates street #%d under normalized name '%s'", e.Name, e.Index, e.First, e.Key)
}
