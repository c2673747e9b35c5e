package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultTowerConfig()
	require.NoError(t, yaml.Unmarshal(defaultTowerYAML, &cfg))
	assert.Equal(t, DefaultTowerConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTowerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("speed:\n  initial: 12\nbonus:\n  enabled: false\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadTower(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Speed.Initial)
	assert.False(t, cfg.Bonus.Enabled)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 3.0, cfg.World.OriginalSize)
	assert.Equal(t, 10, cfg.Speed.LevelEvery)
}

func TestLoadTowerErrors(t *testing.T) {
	_, err := LoadTower(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("world: [not, a, map]"), 0o600))
	_, err = LoadTower(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("world:\n  original_size: 0\n"), 0o600))
	_, err = LoadTower(invalid)
	assert.ErrorContains(t, err, "original_size")
}

func TestValidate(t *testing.T) {
	cfg := DefaultTowerConfig()
	cfg.Autopilot.PrecisionMin = 1
	cfg.Autopilot.PrecisionMax = 1
	cfg.Camera.ViewWidth = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "precision")
	assert.ErrorContains(t, err, "view_width")
}

func TestApplyTowerPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		wantInitial   float64
		wantIncrement float64
	}{
		{"", 8, 1},
		{DifficultyEasy, 6, 1},
		{DifficultyNormal, 8, 1},
		{DifficultyHard, 8 * 1.4, 1},
		{DifficultyFixed, 8, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTowerConfig()
			ApplyTowerPreset(&cfg, tc.preset)
			assert.InDelta(t, tc.wantInitial, cfg.Speed.Initial, 1e-9)
			assert.InDelta(t, tc.wantIncrement, cfg.Speed.Increment, 1e-9)
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParseDifficultyPreset("hard"))
	assert.Equal(t, DifficultyPreset(""), ParseDifficultyPreset("nightmare"))
}
