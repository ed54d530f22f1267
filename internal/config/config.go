package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
)

// EnvPrefix is prefix of environment variables mirroring the flags (e.g. OSM2STREETS_EXTRACT_FILE for -extract-file).
const EnvPrefix = "OSM2STREETS"

// Output formats.
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
	FormatWKT     = "wkt"
)

// Config holds the settings of a single resolution run.
//
// Fields:
// - Env: The current environment (local, development, production), drives logger setup.
// - ExtractFile: Path to the OSM extract (*.osm.pbf, *.osm, *.xml).
// - StreetsFile: Path to the `name;date` street list.
// - Out: Output file, "-" for stdout.
// - Format: Output format (json, geojson, wkt).
// - OriginLat, OriginLon, RadiusKM: Regional-plausibility filter settings.
// - MissingPoints: What to do with ways referencing unknown nodes (abort, drop).
// - StrictNames: Reject street lists with duplicate names.
// - Procs: Number of PBF decoding goroutines.
// - DatabaseURL: Optional PostGIS connection string; geometries are saved when set.
// - MetricsFile: Optional path of Prometheus textfile with resolution metrics.
type Config struct {
	Env           string
	ExtractFile   string
	StreetsFile   string
	Out           string
	Format        string
	OriginLat     float64
	OriginLon     float64
	RadiusKM      float64
	MissingPoints string
	StrictNames   bool
	Procs         int
	DatabaseURL   string
	MetricsFile   string
}

// Load reads .env (when present), then parses flags with environment fallback.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("osm2streets", flag.ContinueOnError)
	fs.StringVar(&cfg.Env, "env", "production", "Environment: local / development / production")
	fs.StringVar(&cfg.ExtractFile, "extract-file", "", "Filename of OSM extract (*.osm.pbf, *.osm, *.xml)")
	fs.StringVar(&cfg.StreetsFile, "streets-file", "", "Filename of street list, one 'name;date' per line")
	fs.StringVar(&cfg.Out, "out", "-", "Output filename, '-' for stdout")
	fs.StringVar(&cfg.Format, "format", FormatJSON, "Output format. Expected values: json / geojson / wkt")
	fs.Float64Var(&cfg.OriginLat, "origin-lat", 49.0, "Latitude of region center")
	fs.Float64Var(&cfg.OriginLon, "origin-lon", 8.40, "Longitude of region center")
	fs.Float64Var(&cfg.RadiusKM, "radius", 10.0, "Max distance (km) between first point of segment and region center")
	fs.StringVar(&cfg.MissingPoints, "missing-points", "abort", "What to do with ways referencing unknown nodes. Expected values: abort / drop")
	fs.BoolVar(&cfg.StrictNames, "strict-names", false, "Reject street lists with duplicate names")
	fs.IntVar(&cfg.Procs, "procs", 4, "Number of goroutines for PBF decoding")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "PostGIS connection string. Geometries are saved when provided")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Prometheus textfile for resolution metrics")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(EnvPrefix)); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.ExtractFile == "" {
		errs = append(errs, errors.New("extract file is required"))
	}
	if cfg.StreetsFile == "" {
		errs = append(errs, errors.New("streets file is required"))
	}
	switch cfg.Format {
	case FormatJSON, FormatGeoJSON, FormatWKT:
	default:
		errs = append(errs, fmt.Errorf("unsupported format: %s", cfg.Format))
	}
	switch cfg.MissingPoints {
	case "abort", "drop":
	default:
		errs = append(errs, fmt.Errorf("unsupported missing points policy: %s", cfg.MissingPoints))
	}
	if cfg.OriginLat < -90 || cfg.OriginLat > 90 {
		errs = append(errs, fmt.Errorf("origin latitude out of range: %f", cfg.OriginLat))
	}
	if cfg.OriginLon < -180 || cfg.OriginLon > 180 {
		errs = append(errs, fmt.Errorf("origin longitude out of range: %f", cfg.OriginLon))
	}
	if cfg.RadiusKM <= 0 {
		errs = append(errs, fmt.Errorf("radius must be positive: %f", cfg.RadiusKM))
	}
	if cfg.Procs < 1 {
		errs = append(errs, fmt.Errorf("procs must be at least 1: %d", cfg.Procs))
	}
	return errors.Join(errs...)
}
