package osm2streets

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// materialize converts collected node ids into points and filters out segments from other regions
func (resolver *Resolver) materialize(ctx context.Context, index *streetIndex, points pointTable) ([]StreetGeometry, error) {
	st := time.Now()
	geoms := make([]StreetGeometry, 0, index.size())
	kept, dropped := 0, 0
	for _, acc := range index.order {
		geom := StreetGeometry{
			Name:     acc.street.Name,
			Date:     acc.street.Date,
			Segments: make([][]GeoPoint, 0, len(acc.segments)),
		}
		for i, ids := range acc.segments {
			segment, err := points.resolveSegment(ids, acc.street.Name)
			if err != nil {
				switch resolver.missingPoints {
				case MissingPointDrop:
				case MissingPointAbort:
					return nil, errors.Wrap(err, "Can't materialize segment")
				default:
					return nil, errors.Wrapf(err, "Can't materialize segment with missing point policy '%s'", resolver.missingPoints)
				}
				resolver.log.WarnContext(ctx, "Segment references missing node, dropping it",
					"street", acc.street.Name,
					"segment", i,
					"error", err,
				)
				resolver.metrics.segment(segmentMissingPoint)
				dropped++
				continue
			}
			if len(segment) == 0 {
				resolver.metrics.segment(segmentEmpty)
				dropped++
				continue
			}
			if !resolver.inRegion(segment[0]) {
				resolver.log.DebugContext(ctx, "Segment is out of region",
					"street", acc.street.Name,
					"segment", i,
					"first_point", segment[0].String(),
				)
				resolver.metrics.segment(segmentOutOfRegion)
				dropped++
				continue
			}
			geom.Segments = append(geom.Segments, segment)
			resolver.metrics.segment(segmentKept)
			kept++
		}
		geoms = append(geoms, geom)
	}
	resolver.metrics.stage("materialize", st)
	resolver.log.InfoContext(ctx, "Segments materialized",
		"duration", time.Since(st),
		"streets", len(geoms),
		"segments_kept", kept,
		"segments_dropped", dropped,
	)
	return geoms, nil
}

// inRegion checks if point is closer to origin than the configured radius
func (resolver *Resolver) inRegion(pt GeoPoint) bool {
	return GreatCircleDistance(pt, resolver.origin) < resolver.radiusKM
}
