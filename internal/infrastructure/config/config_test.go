package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int32(2), cfg.Currency.Scale)
	assert.Equal(t, "greedy", cfg.Solver.Strategy)
	assert.Equal(t, 12, cfg.Solver.ExactMaxParticipants)
	assert.Equal(t, 2_000_000, cfg.Solver.ExactStepBudget)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigMergesEnvFileOverBase(t *testing.T) {
	dir := t.TempDir()
	base := "currency:\n  scale: 3\nsolver:\n  strategy: exact\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app-config.yaml"), []byte(base), 0o600))
	override := "solver:\n  exactStepBudget: 5000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(override), 0o600))
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, int32(3), cfg.Currency.Scale)
	assert.Equal(t, "exact", cfg.Solver.Strategy)
	assert.Equal(t, 5000, cfg.Solver.ExactStepBudget)
	assert.Equal(t, 12, cfg.Solver.ExactMaxParticipants, "untouched keys keep their defaults")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("EVENLY_SOLVER_STRATEGY", "exact")
	t.Setenv("EVENLY_CURRENCY_SCALE", "0")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "exact", cfg.Solver.Strategy)
	assert.Equal(t, int32(0), cfg.Currency.Scale, "scale zero is a valid yen-style currency")
}

func TestLoadConfigRejectsScaleOutOfRange(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("EVENLY_CURRENCY_SCALE", "9")

	cfg, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "currency.scale")
}
