package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
analysis:
  alpha: 0.01
  simulations: 100
  strength_method: dynamic
batch:
  mode: parallel
  workers: 4
storage:
  dsn: test.db
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	assert.Equal(t, 100, cfg.Analysis.Simulations)
	assert.Equal(t, "dynamic", cfg.Analysis.StrengthMethod)
	assert.Equal(t, "parallel", cfg.Batch.Mode)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "test.db", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, 500, cfg.Analysis.Simulations)
	assert.Equal(t, "static", cfg.Analysis.StrengthMethod)
	assert.Equal(t, 0.5, cfg.Analysis.RankingBlend)
	assert.Equal(t, 0.2, cfg.Analysis.DominantFraction)
	assert.Equal(t, 0.8, cfg.Analysis.DominantShare)
	assert.Equal(t, 0.70, cfg.Analysis.PersistenceMin)
	assert.Equal(t, 0.75, cfg.Analysis.PersistenceMinRanked)
	assert.Equal(t, "seq", cfg.Batch.Mode)
	assert.Equal(t, 30*time.Second, cfg.CheckpointInterval())
	assert.Equal(t, "leaguebalance.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
analysis:
  alpha: 1.5
  simulations: -10
  ranking_blend: 2.0
`))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, 500, cfg.Analysis.Simulations)
	assert.Equal(t, 0.5, cfg.Analysis.RankingBlend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORAGE_DSN", "override.db")

	cfg, err := Load(writeConfig(t, "log:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "override.db", cfg.Storage.DSN)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "analysis: [esto no es un mapa\n"))
	assert.Error(t, err)
}
