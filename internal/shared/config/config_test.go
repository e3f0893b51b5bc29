package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, SeedTypeStar, cfg.Seeding.SeedType)
	assert.Equal(t, 100, cfg.Seeding.NewGameRetries)
	assert.Equal(t, 97, cfg.Seeding.StarFactor)
	assert.Equal(t, 2*time.Second, cfg.Seeding.NewGameBudget)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadRejectsUnknownSeedType(t *testing.T) {
	t.Setenv("SEED_TYPE", "chaos")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_TYPE")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   string
	}{
		{"sqlite3 uses WAL", "sqlite3", "slots.db?_journal_mode=WAL&_busy_timeout=5000"},
		{"pure go sqlite", "sqlite", "file:slots.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"},
		{"postgres", "postgres", "host=db port=5432 user=u password=p dbname=starseed sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Database: DatabaseConfig{
				Driver: tt.driver, Path: "slots.db",
				Host: "db", Port: "5432", User: "u", Password: "p", Name: "starseed", SSLMode: "disable",
			}}
			assert.Equal(t, tt.want, cfg.ConnectionString())
		})
	}
}
