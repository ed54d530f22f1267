package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LdDl/osm2streets"
	"github.com/LdDl/osm2streets/internal/config"
	"github.com/LdDl/osm2streets/internal/repository"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := setupLogger(cfg.Env)

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "Resolution failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	policy, err := osm2streets.ParseMissingPointPolicy(cfg.MissingPoints)
	if err != nil {
		return err
	}

	streets, err := readStreets(cfg.StreetsFile)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Street list loaded", "file", cfg.StreetsFile, "streets", len(streets))

	reg := prometheus.NewRegistry()
	resolver := osm2streets.NewResolver(
		osm2streets.WithOrigin(osm2streets.GeoPoint{Lat: cfg.OriginLat, Lon: cfg.OriginLon}),
		osm2streets.WithRadius(cfg.RadiusKM),
		osm2streets.WithMissingPointPolicy(policy),
		osm2streets.WithStrictNames(cfg.StrictNames),
		osm2streets.WithProcs(cfg.Procs),
		osm2streets.WithLogger(logger),
		osm2streets.WithMetrics(osm2streets.NewMetrics(reg)),
	)
	logger.DebugContext(ctx, resolver.String())

	st := time.Now()
	geoms, err := resolver.Resolve(ctx, cfg.ExtractFile, streets)
	if err != nil {
		return errors.Wrap(err, "Can't resolve streets")
	}
	logSummary(ctx, logger, geoms, time.Since(st))

	if err = writeOutput(cfg.Out, cfg.Format, geoms); err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		if err = saveToDatabase(ctx, cfg.DatabaseURL, logger, geoms); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err = prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return errors.Wrap(err, "Can't write metrics")
		}
		logger.InfoContext(ctx, "Metrics written", "file", cfg.MetricsFile)
	}
	return nil
}

func readStreets(fname string) ([]osm2streets.Street, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open street list")
	}
	defer file.Close()
	return osm2streets.ReadStreetsCSV(file)
}

func writeOutput(fname, format string, geoms []osm2streets.StreetGeometry) error {
	if fname == "-" {
		return encodeOutput(os.Stdout, format, geoms)
	}
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create output file")
	}
	if err = encodeOutput(file, format, geoms); err != nil {
		file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return errors.Wrap(err, "Can't close output file")
	}
	return nil
}

func encodeOutput(w io.Writer, format string, geoms []osm2streets.StreetGeometry) error {
	switch format {
	case config.FormatGeoJSON:
		return osm2streets.WriteGeoJSON(w, geoms)
	case config.FormatWKT:
		return osm2streets.WriteWKT(w, geoms)
	default:
		return osm2streets.WriteJSON(w, geoms)
	}
}

func saveToDatabase(ctx context.Context, databaseURL string, logger *slog.Logger, geoms []osm2streets.StreetGeometry) error {
	dtb, err := repository.NewDatabase(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "Can't connect to database")
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		return err
	}
	if err = repo.SaveStreetGeometries(ctx, geoms); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Street geometries saved to database", "streets", len(geoms))
	return nil
}

func logSummary(ctx context.Context, logger *slog.Logger, geoms []osm2streets.StreetGeometry, took time.Duration) {
	withoutGeometry, segments, points := 0, 0, 0
	for i := range geoms {
		if len(geoms[i].Segments) == 0 {
			withoutGeometry++
			logger.DebugContext(ctx, "Street has no geometry", "name", geoms[i].Name)
		}
		segments += len(geoms[i].Segments)
		points += geoms[i].NumPoints()
	}
	logger.InfoContext(ctx, "Streets resolved",
		"duration", took,
		"streets", len(geoms),
		"without_geometry", withoutGeometry,
		"segments", segments,
		"points", points,
	)
}

// setupLogger initializes and returns a logger based on the environment provided.
// Output goes to stderr so stdout stays free for the resolved geometries.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
