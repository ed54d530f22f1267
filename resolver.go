package osm2streets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// Resolver turns street names into geometries using single pass over map extract
type Resolver struct {
	origin        GeoPoint
	radiusKM      float64
	missingPoints MissingPointPolicy
	strictNames   bool
	procs         int
	log           *slog.Logger
	metrics       *Metrics
}

func (resolver *Resolver) String() string {
	return fmt.Sprintf(`
Street resolver parameters:
	origin: '%s'
	radius_km: %f
	missing_points: '%s'
	strict_names enabled?: %t
	procs: %d
	`,
		resolver.origin,
		resolver.radiusKM,
		resolver.missingPoints,
		resolver.strictNames,
		resolver.procs,
	)
}

func NewResolver(options ...func(*Resolver)) *Resolver {
	resolver := &Resolver{
		origin:        DefaultOrigin,
		radiusKM:      DefaultRadiusKM,
		missingPoints: MissingPointAbort,
		strictNames:   false,
		procs:         DefaultProcs,
	}
	for _, option := range options {
		option(resolver)
	}
	if resolver.log == nil {
		resolver.log = discardLogger()
	}
	return resolver
}

// Resolve opens extract, streams it once and returns geometry for every distinct street.
// Output follows order of first occurrence of each street in the given list
func (resolver *Resolver) Resolve(ctx context.Context, filename string, streets []Street) ([]StreetGeometry, error) {
	resolver.log.InfoContext(ctx, "Opening extract", "file", filename)
	scanner, err := OpenExtract(ctx, filename, resolver.procs)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	geoms, err := resolver.ResolveScanner(ctx, scanner, streets)
	if err != nil {
		var formatErr *ExtractFormatError
		if errors.As(err, &formatErr) && formatErr.Filename == "" {
			formatErr.Filename = filename
		}
		return nil, err
	}
	return geoms, nil
}

// ResolveScanner does the same as Resolve but for already prepared scanner. Scanner is not closed
func (resolver *Resolver) ResolveScanner(ctx context.Context, scanner OSMScanner, streets []Street) ([]StreetGeometry, error) {
	switch resolver.missingPoints {
	case MissingPointAbort, MissingPointDrop:
	default:
		return nil, fmt.Errorf("unknown missing point policy '%s' (%d)", resolver.missingPoints, uint16(resolver.missingPoints))
	}
	normalizer := newNameNormalizer()
	index, err := newStreetIndex(streets, normalizer, resolver.strictNames)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build street index")
	}
	resolver.log.DebugContext(ctx, "Street index is ready", "streets", index.size())

	points, err := resolver.scan(ctx, scanner, index, normalizer)
	if err != nil {
		return nil, err
	}
	return resolver.materialize(ctx, index, points)
}

// scan is the single pass: fills segments of tracked streets and the point table
func (resolver *Resolver) scan(ctx context.Context, scanner OSMScanner, index *streetIndex, normalizer *nameNormalizer) (pointTable, error) {
	st := time.Now()
	points := newPointTable()
	waysScanned, waysMatched := 0, 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanning has been interrupted")
		}
		switch obj := scanner.Object().(type) {
		case *osm.Way:
			waysScanned++
			name := obj.Tags.Find(nameTag)
			if name == "" {
				resolver.metrics.wayScanned(false)
				continue
			}
			acc, ok := index.lookup(normalizer.normalize(name))
			if !ok {
				resolver.metrics.wayScanned(false)
				continue
			}
			acc.appendSegment(obj.Nodes)
			waysMatched++
			resolver.metrics.wayScanned(true)
		case *osm.Node:
			points.insert(obj.ID, obj.Lat, obj.Lon)
			resolver.metrics.pointIndexed()
		}
	}
	if err := scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "Scanning has been interrupted")
		}
		return nil, &ExtractFormatError{Err: err}
	}
	resolver.metrics.stage("scan", st)
	resolver.log.InfoContext(ctx, "Extract scanned",
		"duration", time.Since(st),
		"ways", waysScanned,
		"ways_matched", waysMatched,
		"points", len(points),
	)
	return points, nil
}
