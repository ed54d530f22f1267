package config_test

import (
	"flag"
	"testing"

	"github.com/LdDl/osm2streets/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load([]string{"-extract-file", "region.osm.pbf", "-streets-file", "streets.csv"})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "region.osm.pbf", cfg.ExtractFile)
	assert.Equal(t, "streets.csv", cfg.StreetsFile)
	assert.Equal(t, "-", cfg.Out)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.InDelta(t, 49.0, cfg.OriginLat, 1e-9)
	assert.InDelta(t, 8.40, cfg.OriginLon, 1e-9)
	assert.InDelta(t, 10.0, cfg.RadiusKM, 1e-9)
	assert.Equal(t, "abort", cfg.MissingPoints)
	assert.False(t, cfg.StrictNames)
	assert.Equal(t, 4, cfg.Procs)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OSM2STREETS_ENV", "local")
	t.Setenv("OSM2STREETS_EXTRACT_FILE", "env.osm.pbf")
	t.Setenv("OSM2STREETS_STREETS_FILE", "env.csv")
	t.Setenv("OSM2STREETS_FORMAT", "geojson")
	t.Setenv("OSM2STREETS_ORIGIN_LAT", "52.52")
	t.Setenv("OSM2STREETS_ORIGIN_LON", "13.405")
	t.Setenv("OSM2STREETS_RADIUS", "25")
	t.Setenv("OSM2STREETS_MISSING_POINTS", "drop")
	t.Setenv("OSM2STREETS_STRICT_NAMES", "true")
	t.Setenv("OSM2STREETS_PROCS", "2")
	t.Setenv("OSM2STREETS_DATABASE_URL", "postgres://localhost/streets")
	t.Setenv("OSM2STREETS_METRICS_FILE", "/tmp/osm2streets.prom")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "env.osm.pbf", cfg.ExtractFile)
	assert.Equal(t, "env.csv", cfg.StreetsFile)
	assert.Equal(t, config.FormatGeoJSON, cfg.Format)
	assert.InDelta(t, 52.52, cfg.OriginLat, 1e-9)
	assert.InDelta(t, 13.405, cfg.OriginLon, 1e-9)
	assert.InDelta(t, 25.0, cfg.RadiusKM, 1e-9)
	assert.Equal(t, "drop", cfg.MissingPoints)
	assert.True(t, cfg.StrictNames)
	assert.Equal(t, 2, cfg.Procs)
	assert.Equal(t, "postgres://localhost/streets", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/osm2streets.prom", cfg.MetricsFile)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("OSM2STREETS_EXTRACT_FILE", "env.osm.pbf")
	t.Setenv("OSM2STREETS_STREETS_FILE", "env.csv")
	t.Setenv("OSM2STREETS_FORMAT", "geojson")

	cfg, err := config.Load([]string{"-format", "wkt"})
	require.NoError(t, err)
	assert.Equal(t, config.FormatWKT, cfg.Format)
	assert.Equal(t, "env.osm.pbf", cfg.ExtractFile)
}

func TestLoad_Errors(t *testing.T) {
	required := []string{"-extract-file", "a.osm.pbf", "-streets-file", "s.csv"}

	t.Run("missing files", func(t *testing.T) {
		_, err := config.Load(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extract file is required")
		assert.Contains(t, err.Error(), "streets file is required")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.Load(append(required, "-format", "kml"))
		require.ErrorContains(t, err, "unsupported format: kml")
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := config.Load(append(required, "-missing-points", "ignore"))
		require.ErrorContains(t, err, "unsupported missing points policy")
	})

	t.Run("invalid radius", func(t *testing.T) {
		_, err := config.Load(append(required, "-radius", "0"))
		require.ErrorContains(t, err, "radius must be positive")
	})

	t.Run("invalid origin", func(t *testing.T) {
		_, err := config.Load(append(required, "-origin-lat", "91", "-origin-lon", "-181"))
		require.ErrorContains(t, err, "origin latitude out of range")
		require.ErrorContains(t, err, "origin longitude out of range")
	})

	t.Run("invalid procs", func(t *testing.T) {
		_, err := config.Load(append(required, "-procs", "0"))
		require.ErrorContains(t, err, "procs must be at least 1")
	})

	t.Run("unparsable flag value", func(t *testing.T) {
		_, err := config.Load(append(required, "-radius", "far"))
		require.ErrorContains(t, err, "failed to parse configuration")
	})
}

func TestLoad_Help(t *testing.T) {
	_, err := config.Load([]string{"-h"})
	require.Error(t, err)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
