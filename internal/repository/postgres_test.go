package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/LdDl/osm2streets"
	"github.com/LdDl/osm2streets/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upsertStreetQuery = `
	INSERT INTO street_geometries (name, date, geom)
	VALUES ($1, $2, ST_GeomFromText($3, 4326))
	ON CONFLICT (name) DO UPDATE
	SET
		date = EXCLUDED.date,
		geom = EXCLUDED.geom;
`

var geoms = []osm2streets.StreetGeometry{
	{
		Name:     "Hauptstraße",
		Date:     "12.05.2023",
		Segments: [][]osm2streets.GeoPoint{{{Lat: 49.0, Lon: 8.4}, {Lat: 49.0, Lon: 8.5}}},
	},
	{
		Name:     "Kaiserstraße",
		Date:     "14.05.2023",
		Segments: [][]osm2streets.GeoPoint{},
	},
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS street_geometries")).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

		require.NoError(t, repo.EnsureSchema(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS street_geometries")).
			WillReturnError(assert.AnError)

		err = repo.EnsureSchema(ctx)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to create street_geometries table")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveStreetGeometries(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertStreetQuery)).
			WithArgs("Hauptstraße", "12.05.2023", "MULTILINESTRING((8.4 49,8.5 49))").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(upsertStreetQuery)).
			WithArgs("Kaiserstraße", "14.05.2023", "MULTILINESTRING EMPTY").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveStreetGeometries(ctx, geoms))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - begin", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectBegin().WillReturnError(assert.AnError)

		err = repo.SaveStreetGeometries(ctx, geoms)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert rolls back", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertStreetQuery)).
			WithArgs("Hauptstraße", "12.05.2023", "MULTILINESTRING((8.4 49,8.5 49))").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = repo.SaveStreetGeometries(ctx, geoms)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to save street 'Hauptstraße'")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - commit", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertStreetQuery)).
			WithArgs("Hauptstraße", "12.05.2023", "MULTILINESTRING((8.4 49,8.5 49))").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(upsertStreetQuery)).
			WithArgs("Kaiserstraße", "14.05.2023", "MULTILINESTRING EMPTY").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit().WillReturnError(assert.AnError)

		err = repo.SaveStreetGeometries(ctx, geoms)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
