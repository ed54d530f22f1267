package osm2streets

import (
	"fmt"
	"io"
	"log/slog"
)

// MissingPointPolicy defines what to do when way references node which is absent in extract
type MissingPointPolicy uint16

const (
	MissingPointUndefined = MissingPointPolicy(iota)
	// MissingPointAbort fails whole resolution with *MissingPointError
	MissingPointAbort
	// MissingPointDrop drops the offending segment only
	MissingPointDrop
)

func (iotaIdx MissingPointPolicy) String() string {
	if iotaIdx > MissingPointDrop {
		return "undefined"
	}
	return [...]string{"undefined", "abort", "drop"}[iotaIdx]
}

// ParseMissingPointPolicy parses textual representation of policy
func ParseMissingPointPolicy(s string) (MissingPointPolicy, error) {
	switch s {
	case "abort":
		return MissingPointAbort, nil
	case "drop":
		return MissingPointDrop, nil
	default:
		return MissingPointUndefined, fmt.Errorf("unknown missing point policy '%s'. Expected values: abort / drop", s)
	}
}

var (
	// DefaultOrigin is the center of Karlsruhe
	DefaultOrigin = GeoPoint{Lat: 49.0, Lon: 8.40}
)

const (
	// DefaultRadiusKM is max distance between first point of segment and origin
	DefaultRadiusKM = 10.0
	// DefaultProcs is number of PBF decoding goroutines
	DefaultProcs = 4
	nameTag      = "name"
)

func WithOrigin(origin GeoPoint) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.origin = origin
	}
}

func WithRadius(radiusKM float64) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.radiusKM = radiusKM
	}
}

func WithMissingPointPolicy(policy MissingPointPolicy) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.missingPoints = policy
	}
}

// WithStrictNames makes resolver reject street lists with duplicate normalized names
func WithStrictNames(strict bool) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.strictNames = strict
	}
}

func WithProcs(procs int) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.procs = procs
	}
}

func WithLogger(logger *slog.Logger) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.log = logger
	}
}

func WithMetrics(metrics *Metrics) func(*Resolver) {
	return func(resolver *Resolver) {
		resolver.metrics = metrics
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
