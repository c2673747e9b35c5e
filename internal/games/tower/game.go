// Package tower implements the tower stacking game on top of the stacker
// core, the physics world and the terminal scene renderer.
package tower

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/physics"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/scene"
	"github.com/vovakirdan/tui-tower/internal/stacker"
)

// Mode selects how a session is played.
type Mode int

const (
	ModeArcade Mode = iota // Attract mode until the first activate, then manual play
	ModeDemo               // Endless autopilot; input other than quit is ignored
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation events; nil discards them.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger routes simulation logs to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game adapts a stacker session to the arcade platform.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.TowerConfig

	machine *stacker.Machine
	world   *physics.World
	scene   *scene.Renderer
	hud     *HUD

	clock time.Time // Synthetic frame clock for frames without a timestamp
	ticks int
}

// New creates a new tower game in arcade mode.
func New() *Game {
	return &Game{mode: ModeArcade}
}

// NewDemo creates a tower game that only ever plays itself.
func NewDemo() *Game {
	return &Game{mode: ModeDemo}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeDemo {
		return "tower-demo"
	}
	return "tower"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeDemo {
		return "Tower (Demo)"
	}
	return "Tower"
}

// Reset builds a fresh world and starts the session in attract mode.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadTower(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("using default tower config", "err", err)
		}
		cfg = config.DefaultTowerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTowerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.world = physics.New(physics.Config{
		Gravity:    cfg.World.Gravity,
		Iterations: cfg.World.SolverIterations,
	})
	g.scene = scene.New(nil)
	g.hud = NewHUD(runtime.Username, g.mode == ModeDemo)
	g.machine = stacker.New(stacker.Options{
		Config:   cfg,
		Renderer: g.scene,
		Physics:  g.world,
		UI:       g.hud,
		Seed:     runtime.Seed,
		Aspect:   runtime.Aspect(),
		Logger:   logger,
	})
	g.clock = time.Unix(0, 0)
	g.ticks = 0

	g.machine.Start()
}

// Step advances the session to the frame's timestamp. Frames without one
// advance by one tick at the configured rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ticks++

	if g.mode == ModeArcade {
		// A restart consumes the frame's activate; the fresh layer is off-stage.
		switch {
		case in.Has(core.ActionRestart):
			g.machine.OnRestart()
		case in.Has(core.ActionActivate):
			g.machine.OnActivate()
		}
	}

	now := in.At
	if now.IsZero() {
		rate := g.runtime.TickRate
		if rate <= 0 {
			rate = 60
		}
		g.clock = g.clock.Add(time.Second / time.Duration(rate))
		now = g.clock
	}
	g.machine.Advance(now)

	return core.StepResult{State: g.State()}
}

// Resize reframes the camera for a new terminal size.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.machine.OnResize(g.runtime.Aspect())
}

// Render draws the tower and the HUD.
func (g *Game) Render(dst *core.Screen) {
	g.scene.SetTarget(dst)
	g.machine.Draw()
	g.hud.Draw(dst)
}

// State returns the current game state. Only a manual game can be over;
// the autopilot restarts by itself.
func (g *Game) State() core.GameState {
	ctx := g.machine.Context()
	return core.GameState{
		Score:     ctx.Score,
		Level:     ctx.Level,
		GameOver:  ctx.GameEnded && !ctx.Autopilot,
		Autopilot: ctx.Autopilot,
	}
}

// Username returns the player name the session was started with.
func (g *Game) Username() string {
	return g.hud.Username()
}

// Register the games with the registry
func init() {
	registry.Register("tower", func() registry.Game {
		return New()
	})
	registry.Register("tower-demo", func() registry.Game {
		return NewDemo()
	})
}
