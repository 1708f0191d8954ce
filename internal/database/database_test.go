package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/fieldops/internal/database/repository"
)

func TestMigrateAndSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedDefaults(ctx, db))
	var workers, teams, attendance int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workers").Scan(&workers))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams").Scan(&teams))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance").Scan(&attendance))
	require.Equal(t, 12, workers)
	require.Equal(t, 3, teams)
	require.Equal(t, 12*30, attendance)

	require.NoError(t, SeedDefaults(ctx, db))
	var again int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workers").Scan(&again))
	require.Equal(t, workers, again)
}

func TestRunMigrationsWithDB(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrationsWithDB(db))
	require.NoError(t, db.Ping())
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM gps_logs").Scan(&n))
	require.Zero(t, n)
}

func TestParseRoster(t *testing.T) {
	roster, err := LoadRoster()
	require.NoError(t, err)
	require.Len(t, roster.Teams, 3)
	require.Len(t, roster.Workers, 12)
	require.Equal(t, "Ali Ahmed", roster.Workers[0].Name)
	require.Len(t, roster.Workers[0].Visits, 3)

	_, err = ParseRoster(`
[[team]]
name = "A"

[[worker]]
name = "x"
team = "B"
`)
	require.ErrorContains(t, err, "unknown team")

	_, err = ParseRoster(`
[[team]]
name = "A"
colour = "red"
`)
	require.ErrorContains(t, err, "unknown keys")
}

func TestStableIDsAreDeterministic(t *testing.T) {
	require.Equal(t, stableID("worker", "Ali Ahmed"), stableID("worker", "Ali Ahmed"))
	require.NotEqual(t, stableID("worker", "Ali Ahmed"), stableID("team", "Ali Ahmed"))
}

func TestReanchorGPSKeepsRecentWindowsFilled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrationsWithDB(db))

	roster, err := LoadRoster()
	require.NoError(t, err)
	seeded := time.Date(2026, 9, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		return SeedRoster(ctx, tx, roster, seeded)
	}))

	gps := repository.NewGPSRepo(db)
	count := func(now time.Time, window time.Duration) int {
		logs, err := gps.List(ctx, repository.GPSFilters{Since: now.Add(-window)})
		require.NoError(t, err)
		return len(logs)
	}

	later := seeded.Add(25 * time.Hour)
	require.Zero(t, count(later, 24*time.Hour))
	require.NoError(t, ReanchorGPS(ctx, db, roster, later))
	require.Equal(t, 18, count(later, 24*time.Hour))
	require.Equal(t, 27, count(later, 7*24*time.Hour))

	// Already current: a second pass must not move anything.
	before, err := gps.List(ctx, repository.GPSFilters{})
	require.NoError(t, err)
	require.NoError(t, ReanchorGPS(ctx, db, roster, later))
	after, err := gps.List(ctx, repository.GPSFilters{})
	require.NoError(t, err)
	require.Equal(t, before[0].LoggedAt, after[0].LoggedAt)

	muchLater := seeded.Add(192 * time.Hour)
	require.NoError(t, ReanchorGPS(ctx, db, roster, muchLater))
	require.Equal(t, 18, count(muchLater, 24*time.Hour))
	require.Equal(t, 27, count(muchLater, 7*24*time.Hour))
}

func TestWithTxUsesContext(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrationsWithDB(db))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)

	require.NoError(t, WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO teams(id, name) VALUES ('t1', 'North')`)
		return err
	}))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM teams`).Scan(&n))
	require.Equal(t, 1, n)
}
