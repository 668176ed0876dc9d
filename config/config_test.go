package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fngbot/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "https://api.binance.com", cfg.Data.BinanceBase)
	assert.Equal(t, "https://api.alternative.me", cfg.Data.FearGreedBase)
	assert.Equal(t, 2018, cfg.Data.FromYear)
	assert.InDelta(t, 10000, cfg.Strategy.InitialCapital, 1e-9)
	assert.Equal(t, 50, cfg.Strategy.BuyThreshold)
	assert.Equal(t, 90, cfg.Strategy.SellThreshold)
	assert.Equal(t, "fngbot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLValues(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
data:
  from_year: 2020
strategy:
  initial_capital: 5000
  buy_threshold: 30
  sell_threshold: 80
engine:
  workers: 4
log:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, 2020, cfg.Data.FromYear)
	assert.InDelta(t, 5000, cfg.Strategy.InitialCapital, 1e-9)
	assert.Equal(t, 30, cfg.Strategy.BuyThreshold)
	assert.Equal(t, 80, cfg.Strategy.SellThreshold)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Strategy.BuyThreshold)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FNGBOT_CAPITAL", "2500")

	cfg, err := config.Load(writeConfig(t, "log:\n  level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.InDelta(t, 2500, cfg.Strategy.InitialCapital, 1e-9)
}

func TestLoad_ThresholdOutOfRange(t *testing.T) {
	_, err := config.Load(writeConfig(t, "strategy:\n  buy_threshold: 150\n"))
	assert.Error(t, err)
}
