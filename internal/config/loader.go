package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTower loads the tower configuration.
// Search order: customPath -> ~/.arcade/configs/tower.yaml -> ./configs/tower.yaml -> embedded default
func LoadTower(customPath string) (TowerConfig, error) {
	// Unset keys keep their defaults.
	cfg := DefaultTowerConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("tower.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryLoad(filepath.Join("configs", "tower.yaml")); ok {
		return loaded, nil
	}

	if err := yaml.Unmarshal(defaultTowerYAML, &cfg); err != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or invalid files are skipped.
func tryLoad(path string) (TowerConfig, bool) {
	cfg := DefaultTowerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyTowerPreset modifies the config based on a difficulty preset.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Speed.Increment = 0
	default:
		cfg.Speed.Initial *= SpeedFactorForPreset(preset)
	}
}

// Validate reports every setting that would break the simulation.
func (c TowerConfig) Validate() error {
	var errs []error
	if c.World.BlockHeight <= 0 {
		errs = append(errs, fmt.Errorf("world.block_height must be positive, got %v", c.World.BlockHeight))
	}
	if c.World.OriginalSize <= 0 {
		errs = append(errs, fmt.Errorf("world.original_size must be positive, got %v", c.World.OriginalSize))
	}
	if c.World.PlayBound <= 0 {
		errs = append(errs, fmt.Errorf("world.play_bound must be positive, got %v", c.World.PlayBound))
	}
	if c.World.SolverIterations <= 0 {
		errs = append(errs, fmt.Errorf("world.solver_iterations must be positive, got %d", c.World.SolverIterations))
	}
	if c.Blocks.DynamicMass <= 0 {
		errs = append(errs, fmt.Errorf("blocks.dynamic_mass must be positive, got %v", c.Blocks.DynamicMass))
	}
	if c.Speed.Initial <= 0 {
		errs = append(errs, fmt.Errorf("speed.initial must be positive, got %v", c.Speed.Initial))
	}
	if c.Speed.LevelEvery <= 0 {
		errs = append(errs, fmt.Errorf("speed.level_every must be positive, got %d", c.Speed.LevelEvery))
	}
	if c.Autopilot.PrecisionMin >= c.Autopilot.PrecisionMax {
		errs = append(errs, fmt.Errorf("autopilot precision range [%v, %v) is empty",
			c.Autopilot.PrecisionMin, c.Autopilot.PrecisionMax))
	}
	if c.Camera.ViewWidth <= 0 {
		errs = append(errs, fmt.Errorf("camera.view_width must be positive, got %v", c.Camera.ViewWidth))
	}
	return errors.Join(errs...)
}
