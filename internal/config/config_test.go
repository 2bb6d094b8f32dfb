package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "teleData", cfg.Database.Database)
	assert.Equal(t, "userData", cfg.Database.Collection)
	assert.Equal(t, 4, cfg.Scraper.MaxConcurrency)
	assert.Equal(t, 15*time.Second, cfg.Scraper.FetchTimeout)
	assert.False(t, cfg.Scraper.StrictHost)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Hour, cfg.Cache.DedupTTL)
	assert.False(t, cfg.Server.Pprof)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCRAPER_MAX_CONCURRENCY", "8")
	t.Setenv("SCRAPER_STRICT_HOST", "true")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("TELEGRAM_TOKEN", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Scraper.MaxConcurrency)
	assert.True(t, cfg.Scraper.StrictHost)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "secret", cfg.Telegram.Token)
}

func TestLoadDotenvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("DATABASE_DATABASE=fromfile\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DATABASE_DATABASE") })

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Database.Database)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("SCRAPER_MAX_CONCURRENCY", "0")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.env")) })
}
