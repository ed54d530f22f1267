package repository

import (
	"context"
	"fmt"

	"github.com/LdDl/osm2streets"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS street_geometries (
		name TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		geom geometry(MultiLineString, 4326) NOT NULL
	);
`

const upsertStreetQuery = `
	INSERT INTO street_geometries (name, date, geom)
	VALUES ($1, $2, ST_GeomFromText($3, 4326))
	ON CONFLICT (name) DO UPDATE
	SET
		date = EXCLUDED.date,
		geom = EXCLUDED.geom;
`

// NewDatabase opens a connection pool for the given connection string and checks it with a ping.
func NewDatabase(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the street_geometries table when it does not exist. Requires PostGIS.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableQuery)
	if err != nil {
		return fmt.Errorf("failed to create street_geometries table: %w", err)
	}
	return nil
}

// SaveStreetGeometries upserts all streets in one transaction. Geometry is passed as WKT MULTILINESTRING.
// Any failure rolls the whole batch back.
func (r *Repository) SaveStreetGeometries(ctx context.Context, geoms []osm2streets.StreetGeometry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i := range geoms {
		_, err = tx.Exec(ctx, upsertStreetQuery,
			geoms[i].Name,
			geoms[i].Date,
			osm2streets.PrepareWKTMultiLinestring(geoms[i]),
		)
		if err != nil {
			if errRollback := tx.Rollback(ctx); errRollback != nil {
				r.log.ErrorContext(ctx, "Failed to rollback transaction", "error", errRollback)
			}
			return fmt.Errorf("failed to save street '%s': %w", geoms[i].Name, err)
		}
		r.log.DebugContext(ctx, "Street geometry saved", "name", geoms[i].Name, "segments", len(geoms[i].Segments))
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
