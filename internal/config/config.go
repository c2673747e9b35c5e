// Package config provides YAML-based game configuration loading and
// difficulty presets for the tower game.
package config

// TowerConfig contains all configuration for the tower stacking game.
type TowerConfig struct {
	World     WorldConfig     `yaml:"world"`
	Blocks    BlocksConfig    `yaml:"blocks"`
	Speed     SpeedConfig     `yaml:"speed"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Camera    CameraConfig    `yaml:"camera"`
	Bonus     BonusConfig     `yaml:"bonus"`
}

// WorldConfig defines the tower geometry and physics world.
type WorldConfig struct {
	BlockHeight      float64 `yaml:"block_height"`      // Vertical extent of every layer
	OriginalSize     float64 `yaml:"original_size"`     // Width and depth of the base layer
	PlayBound        float64 `yaml:"play_bound"`        // Moving block past this is a miss
	StartOffset      float64 `yaml:"start_offset"`      // Off-stage coordinate new layers start from
	Gravity          float64 `yaml:"gravity"`           // Vertical acceleration (negative = down)
	SolverIterations int     `yaml:"solver_iterations"` // Contact passes per physics sub-step
}

// BlocksConfig defines block mass and coloring.
type BlocksConfig struct {
	DynamicMass float64 `yaml:"dynamic_mass"` // Mass of a full-size falling block
	HueStart    float64 `yaml:"hue_start"`    // Hue of the base layer, degrees
	HueStep     float64 `yaml:"hue_step"`     // Hue shift per layer, degrees
}

// SpeedConfig defines block speed and level progression.
type SpeedConfig struct {
	Initial    float64 `yaml:"initial"`     // World units per second
	Increment  float64 `yaml:"increment"`   // Added on every level-up
	LevelEvery int     `yaml:"level_every"` // Score multiple that triggers a level-up
}

// AutopilotConfig defines the automated player.
type AutopilotConfig struct {
	PrecisionMin   float64 `yaml:"precision_min"`    // Inclusive lower bound of the stop offset
	PrecisionMax   float64 `yaml:"precision_max"`    // Exclusive upper bound of the stop offset
	RestartDelayMs int     `yaml:"restart_delay_ms"` // Pause before an ended demo restarts
}

// CameraConfig defines the initial camera pose and framing.
type CameraConfig struct {
	Position  [3]float64 `yaml:"position"`
	Target    [3]float64 `yaml:"target"`
	ViewWidth float64    `yaml:"view_width"`
}

// BonusConfig toggles the decorative bonus markers.
type BonusConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values map to
// the empty preset, which leaves the loaded config untouched.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// SpeedFactorForPreset returns the initial speed multiplier for a preset.
func SpeedFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.4
	default:
		return 1.0
	}
}
