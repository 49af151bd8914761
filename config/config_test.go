package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/roomgrid/grid"
)

func env(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestFromEnvDefaults(t *testing.T) {
	s, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 3, s.Layout.Rows)
	assert.Equal(t, 3, s.Layout.Columns)
	assert.Equal(t, 3, s.Layout.Count)
	assert.Equal(t, 0.05, s.Layout.DensityFactor)
	assert.Equal(t, 0.5, s.TriggerChance)
	assert.Equal(t, log.InfoLevel, s.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	s, err := FromEnv(env(map[string]string{
		"PORT":           "9000",
		"GRID_ROWS":      "10",
		"GRID_COLUMNS":   "12",
		"GRID_SPACING":   "4.5",
		"GRID_DENSITY":   "0.25",
		"LAYOUT_COUNT":   "7",
		"LAYOUT_SEED":    "-42",
		"TRIGGER_CHANCE": "1",
		"LOG_LEVEL":      "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, 10, s.Layout.Rows)
	assert.Equal(t, 12, s.Layout.Columns)
	assert.Equal(t, 4.5, s.Layout.Spacing)
	assert.Equal(t, 0.25, s.Layout.DensityFactor)
	assert.Equal(t, 7, s.Layout.Count)
	assert.Equal(t, int64(-42), s.Layout.Seed)
	assert.Equal(t, 1.0, s.TriggerChance)
	assert.Equal(t, log.DebugLevel, s.LogLevel)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"GRID_ROWS": "three"}))
	assert.Error(t, err)

	_, err = FromEnv(env(map[string]string{"LAYOUT_COUNT": "0"}))
	assert.ErrorIs(t, err, grid.ErrConfiguration)

	_, err = FromEnv(env(map[string]string{"GRID_DENSITY": "-0.5"}))
	assert.ErrorIs(t, err, grid.ErrConfiguration)

	_, err = FromEnv(env(map[string]string{"TRIGGER_CHANCE": "1.5"}))
	assert.ErrorIs(t, err, grid.ErrConfiguration)
}
