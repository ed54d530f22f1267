package osm2streets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// OSMScanner is forward-only stream of OSM objects. Both osmpbf.Scanner and osmxml.Scanner satisfy it
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// extractStream is scanner bound to the file it reads from
type extractStream struct {
	OSMScanner
	file *os.File
}

// Close closes both scanner and underlying file
func (es *extractStream) Close() error {
	scanErr := es.OSMScanner.Close()
	fileErr := es.file.Close()
	if scanErr != nil {
		return scanErr
	}
	return fileErr
}

// OpenExtract opens map extract and prepares scanner for it. Decoder is guessed by file extension.
// procs is number of goroutines used for PBF blocks decoding (objects are still delivered in file order)
func OpenExtract(ctx context.Context, filename string, procs int) (OSMScanner, error) {
	if procs < 1 {
		procs = 1
	}
	lower := strings.ToLower(filename)
	isPBF := strings.HasSuffix(lower, ".pbf")
	isXML := false
	switch filepath.Ext(lower) {
	case ".osm", ".xml":
		isXML = true
	}
	if !isPBF && !isXML {
		return nil, &ExtractOpenError{Filename: filename, Err: fmt.Errorf("file extension '%s' is not handled yet", filepath.Ext(filename))}
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, &ExtractOpenError{Filename: filename, Err: err}
	}

	if isXML {
		return &extractStream{OSMScanner: osmxml.New(ctx, file), file: file}, nil
	}
	scanner := osmpbf.New(ctx, file, procs)
	// Relations never contribute to street geometry
	scanner.SkipRelations = true
	return &extractStream{OSMScanner: scanner, file: file}, nil
}
