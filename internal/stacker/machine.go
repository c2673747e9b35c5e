// Package stacker is the simulation core of the tower stacking game: the
// block model, the overlap cutter, the physics bridge and the per-frame
// state machine. Rendering, physics and UI are reached only through the
// collaborator interfaces in package engine and UI.
package stacker

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/engine"
)

// State is the session phase.
type State uint8

const (
	StateInit State = iota
	StatePlaying
	StateEnded
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StatePlaying:
		return "Playing"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Options configures a Machine.
type Options struct {
	Config   config.TowerConfig
	Renderer engine.Renderer
	Physics  engine.Physics
	UI       UI
	Seed     int64
	Aspect   float64     // Initial viewport width/height ratio
	Logger   *log.Logger // Optional; defaults to a discarding logger
}

// Machine drives one tower session frame by frame. It is not safe for
// concurrent use: frames and input events must come from one goroutine.
type Machine struct {
	cfg      config.TowerConfig
	renderer engine.Renderer
	physics  engine.Physics
	ui       UI
	bridge   Bridge
	logger   *log.Logger
	rng      *rand.Rand

	ctx      *GameContext
	started  bool
	camera   engine.Camera
	aspect   float64
	lastTick *time.Time    // Nil until the first frame sets the baseline
	endedFor time.Duration // Time spent in Ended, for the autopilot restart
}

// New creates a machine in the Init state. Call Start to begin.
func New(opts Options) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	aspect := opts.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	seed := uint64(opts.Seed) //nolint:gosec // seed bits are reinterpreted, not range-checked

	m := &Machine{
		cfg:      opts.Config,
		renderer: opts.Renderer,
		physics:  opts.Physics,
		ui:       opts.UI,
		bridge:   NewBridge(opts.Renderer, opts.Physics),
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ctx:      newContext(false, opts.Config.Speed.Initial),
		aspect:   aspect,
	}
	m.camera = m.initialCamera()
	return m
}

// Start asks the UI for the player name and begins the attract-mode
// autopilot session.
func (m *Machine) Start() {
	m.ui.SetUsername(m.ui.PromptUsername())
	m.Reset(true)
}

// State returns the current session phase.
func (m *Machine) State() State {
	switch {
	case !m.started:
		return StateInit
	case m.ctx.GameEnded:
		return StateEnded
	default:
		return StatePlaying
	}
}

// Context returns the live session state. Callers must not mutate it.
func (m *Machine) Context() *GameContext {
	return m.ctx
}

// Camera returns the current camera.
func (m *Machine) Camera() engine.Camera {
	return m.camera
}

// Reset discards the session and builds a fresh one with the base layer
// and the first moving layer.
func (m *Machine) Reset(autopilot bool) {
	if m.ctx != nil {
		for _, b := range m.ctx.Stack {
			m.release(b.Handles)
		}
		for _, o := range m.ctx.Overhangs {
			m.release(o.Handles)
		}
		for _, mk := range m.ctx.Markers {
			m.release(mk.Handles)
		}
	}

	m.ctx = newContext(autopilot, m.cfg.Speed.Initial)
	m.started = true
	m.lastTick = nil
	m.endedFor = 0
	m.drawPrecision()

	size := m.cfg.World.OriginalSize
	m.appendLayer(0, 0, size, size, AxisNone)
	m.appendLayer(m.cfg.World.StartOffset, 0, size, size, AxisX)

	m.camera = m.initialCamera()

	m.ui.ShowInstructions(autopilot)
	m.ui.ShowResults(false)
	m.ui.SetScoreText(0)
	m.ui.SetLevelText(1)
	m.logger.Info("new game", "autopilot", autopilot, "speed", m.ctx.Speed)
}

// Advance runs one frame at wall-clock time now. The first frame after a
// reset only records the baseline.
func (m *Machine) Advance(now time.Time) {
	if m.lastTick == nil {
		m.lastTick = &now
		return
	}
	dt := now.Sub(*m.lastTick)
	m.lastTick = &now
	if dt < 0 {
		dt = 0
	}
	m.Tick(dt)
}

// Tick advances the session by dt: moves the active layer, runs the
// autopilot, follows the camera and steps the physics world.
func (m *Machine) Tick(dt time.Duration) {
	if !m.started {
		return
	}
	seconds := dt.Seconds()

	if m.ctx.GameEnded {
		m.endedFor += dt
		if m.ctx.Autopilot && m.endedFor >= time.Duration(m.cfg.Autopilot.RestartDelayMs)*time.Millisecond {
			m.Reset(true)
			return
		}
	} else {
		top := m.ctx.Top()
		if m.boxShouldMove(top, m.ctx.Previous()) {
			pos := PositionAlong(top, top.Axis) + m.ctx.Speed*seconds
			SetPositionAlong(top, top.Axis, pos)
			m.bridge.Drive(top)

			if pos > m.cfg.World.PlayBound {
				m.miss()
			}
		} else if m.ctx.Autopilot {
			m.split()
			m.drawPrecision()
		}

		m.followCamera(seconds)
	}

	m.bridge.Step(seconds, m.ctx.Overhangs, m.ctx.Markers)
}

// boxShouldMove reports whether the active layer keeps sliding. The
// autopilot stops it once it reaches the previous layer plus its precision.
func (m *Machine) boxShouldMove(top, prev *Block) bool {
	if m.ctx.GameEnded {
		return false
	}
	if !m.ctx.Autopilot {
		return true
	}
	return PositionAlong(top, top.Axis) < PositionAlong(prev, top.Axis)+m.ctx.RobotPrecision
}

// drawPrecision picks the autopilot's stop offset for the next layer,
// uniform in [min, max).
func (m *Machine) drawPrecision() {
	lo, hi := m.cfg.Autopilot.PrecisionMin, m.cfg.Autopilot.PrecisionMax
	m.ctx.RobotPrecision = lo + m.rng.Float64()*(hi-lo)
}

// followCamera raises the camera at block speed until it sits above the
// top of the stack.
func (m *Machine) followCamera(seconds float64) {
	target := m.cfg.World.BlockHeight*float64(len(m.ctx.Stack)-2) + m.cfg.Camera.Position[1]
	if m.camera.Position.Y() < target {
		m.camera.Position[1] += m.ctx.Speed * seconds
	}
}

// OnActivate handles a pointer, touch or space event. In attract mode it
// starts a manual game; otherwise it cuts the active layer.
func (m *Machine) OnActivate() {
	if !m.started {
		return
	}
	if m.ctx.Autopilot {
		m.Reset(false)
		return
	}
	m.split()
}

// OnRestart starts a new manual game.
func (m *Machine) OnRestart() {
	m.Reset(false)
}

// OnResize reframes the camera for a new viewport aspect ratio.
func (m *Machine) OnResize(aspect float64) {
	if aspect <= 0 {
		return
	}
	m.aspect = aspect
	m.camera.Frame(aspect)
}

// Draw renders the current frame.
func (m *Machine) Draw() {
	m.renderer.Render(m.camera)
}

func (m *Machine) initialCamera() engine.Camera {
	c := m.cfg.Camera
	return engine.NewCamera(
		mgl64.Vec3{c.Position[0], c.Position[1], c.Position[2]},
		mgl64.Vec3{c.Target[0], c.Target[1], c.Target[2]},
		c.ViewWidth,
		m.aspect,
	)
}
