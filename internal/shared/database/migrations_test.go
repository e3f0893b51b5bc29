package database

import (
	"testing"
	"testing/fstest"

	"uqm-starseed/internal/shared/config"
	"uqm-starseed/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *DB {
	t.Helper()

	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxIdleConns: 1}}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, db.RunMigrations(migrations.FS))
	require.NoError(t, db.RunMigrations(migrations.FS))

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	var slots int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM save_slots").Scan(&slots))
	assert.Zero(t, slots)
}

func TestRunMigrationsStopsOnBadSQL(t *testing.T) {
	db := openMemory(t)

	fsys := fstest.MapFS{
		"001_ok.sql":  {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"002_bad.sql": {Data: []byte("CREATE TABLE")},
	}

	err := db.RunMigrations(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.sql")

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}
