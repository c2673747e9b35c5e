package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the default tower configuration.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		World: WorldConfig{
			BlockHeight:      1,
			OriginalSize:     3,
			PlayBound:        10,
			StartOffset:      -10,
			Gravity:          -10,
			SolverIterations: 40,
		},
		Blocks: BlocksConfig{
			DynamicMass: 5,
			HueStart:    180,
			HueStep:     4,
		},
		Speed: SpeedConfig{
			Initial:    8,
			Increment:  1,
			LevelEvery: 10,
		},
		Autopilot: AutopilotConfig{
			PrecisionMin:   -0.5,
			PrecisionMax:   0.5,
			RestartDelayMs: 2000,
		},
		Camera: CameraConfig{
			Position:  [3]float64{4, 4, 4},
			Target:    [3]float64{0, 0, 0},
			ViewWidth: 10,
		},
		Bonus: BonusConfig{
			Enabled: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tower", "tower-demo":
		return defaultTowerYAML
	default:
		return nil
	}
}
