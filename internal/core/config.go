package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Frames per second requested from the platform (default 60)
	Seed     int64  // RNG seed for deterministic gameplay
	Username string // Player name shown in the HUD and stored with scores
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Aspect returns the visual width/height ratio of the screen.
// Terminal cells are roughly twice as tall as they are wide.
func (c RuntimeConfig) Aspect() float64 {
	if c.ScreenH <= 0 {
		return 1
	}
	return float64(c.ScreenW) / float64(c.ScreenH*2)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score (placed layers)
	Level     int  // Current speed level, starting at 1
	GameOver  bool // Whether the game has ended
	Autopilot bool // Whether the session is being played by the autopilot
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
