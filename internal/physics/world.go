// Package physics is a small rigid-body world for falling tower debris.
//
// Bodies collide as axis-aligned boxes; orientation is integrated from an
// angular velocity but does not affect contacts. Zero-mass bodies are
// static and never move on their own.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/engine"
)

const (
	// SubStep is the longest interval integrated in one pass.
	SubStep = 1.0 / 120.0

	// MaxStep bounds the time one Step call may simulate.
	MaxStep = 0.1
)

// Config tunes a World. Zero fields take the defaults from DefaultConfig.
type Config struct {
	Gravity        float64 // Vertical acceleration, negative is down
	Iterations     int     // Contact passes per sub-step
	Friction       float64 // Coulomb coefficient for resting contacts
	AngularDamping float64 // Fraction of spin lost per second
	KillPlane      float64 // Bodies below this height stop simulating
	TipAccel       float64 // Outward push on a body hanging over an edge
	TipSpin        float64 // Angular acceleration about the edge
}

// DefaultConfig returns the tuning used by the tower game.
func DefaultConfig() Config {
	return Config{
		Gravity:        -10,
		Iterations:     10,
		Friction:       0.3,
		AngularDamping: 0.01,
		KillPlane:      -50,
		TipAccel:       4,
		TipSpin:        6,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Gravity == 0 {
		c.Gravity = d.Gravity
	}
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.Friction <= 0 {
		c.Friction = d.Friction
	}
	if c.AngularDamping <= 0 {
		c.AngularDamping = d.AngularDamping
	}
	if c.KillPlane == 0 {
		c.KillPlane = d.KillPlane
	}
	if c.TipAccel <= 0 {
		c.TipAccel = d.TipAccel
	}
	if c.TipSpin <= 0 {
		c.TipSpin = d.TipSpin
	}
	return c
}

// World owns every body and advances the dynamic ones. It implements
// engine.Physics and, like the rest of the game, is driven from a single
// goroutine.
type World struct {
	cfg    Config
	bodies map[engine.BodyID]*body
	active []*body // Bodies added to the world, in insertion order
	next   engine.BodyID
	time   float64
}

var _ engine.Physics = (*World)(nil)

// New creates an empty world.
func New(cfg Config) *World {
	return &World{
		cfg:    cfg.withDefaults(),
		bodies: make(map[engine.BodyID]*body),
	}
}

// Config returns the effective tuning.
func (w *World) Config() Config {
	return w.cfg
}

// CreateBody allocates a body. It does not take part in the simulation
// until AddToWorld.
func (w *World) CreateBody(s engine.Shape, mass float64, pos mgl64.Vec3) engine.BodyID {
	if mass < 0 || math.IsNaN(mass) {
		mass = 0
	}
	w.next++
	w.bodies[w.next] = &body{
		id:     w.next,
		shape:  s,
		mass:   mass,
		pos:    pos,
		orient: mgl64.QuatIdent(),
	}
	return w.next
}

// AddToWorld starts simulating a body. Adding twice is a no-op.
func (w *World) AddToWorld(id engine.BodyID) {
	b, ok := w.bodies[id]
	if !ok || b.inWorld {
		return
	}
	b.inWorld = true
	w.active = append(w.active, b)
}

// RemoveFromWorld drops a body for good; its handle becomes invalid.
func (w *World) RemoveFromWorld(id engine.BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	delete(w.bodies, id)
	if b.inWorld {
		for i, a := range w.active {
			if a == b {
				w.active = append(w.active[:i], w.active[i+1:]...)
				break
			}
		}
	}
	if b.static() {
		w.wakeAll()
	}
}

// ReplaceShape swaps a body's collision shape for a new one.
func (w *World) ReplaceShape(id engine.BodyID, s engine.Shape) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	b.shape = s
	w.wakeAll()
}

// SetPosition teleports a body. Velocity is kept.
func (w *World) SetPosition(id engine.BodyID, pos mgl64.Vec3) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	b.pos = pos
	if b.static() {
		w.wakeAll()
	} else {
		b.wake()
	}
}

// Position returns a body's center, or the zero vector for an unknown handle.
func (w *World) Position(id engine.BodyID) mgl64.Vec3 {
	if b, ok := w.bodies[id]; ok {
		return b.pos
	}
	return mgl64.Vec3{}
}

// Orientation returns a body's rotation, or identity for an unknown handle.
func (w *World) Orientation(id engine.BodyID) mgl64.Quat {
	if b, ok := w.bodies[id]; ok {
		return b.orient
	}
	return mgl64.QuatIdent()
}

// Velocity returns a body's linear velocity.
func (w *World) Velocity(id engine.BodyID) mgl64.Vec3 {
	if b, ok := w.bodies[id]; ok {
		return b.vel
	}
	return mgl64.Vec3{}
}

// Sleeping reports whether a body has stopped simulating, either at rest
// or below the kill plane.
func (w *World) Sleeping(id engine.BodyID) bool {
	b, ok := w.bodies[id]
	return ok && (b.resting || b.killed)
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return len(w.active)
}

// Elapsed returns the simulated time in seconds.
func (w *World) Elapsed() float64 {
	return w.time
}

// Step advances the world by seconds, clamped to MaxStep, in sub-steps of
// at most SubStep.
func (w *World) Step(seconds float64) {
	if !(seconds > 0) {
		return
	}
	if seconds > MaxStep {
		seconds = MaxStep
	}
	n := int(math.Ceil(seconds/SubStep - 1e-9))
	if n < 1 {
		n = 1
	}
	h := seconds / float64(n)
	for i := 0; i < n; i++ {
		w.substep(h)
	}
	w.time += seconds
}

func (w *World) substep(h float64) {
	for _, b := range w.active {
		if b.simulated() {
			b.integrate(h, w.cfg.Gravity, w.cfg.AngularDamping)
		}
	}

	for pass := 0; pass < w.cfg.Iterations; pass++ {
		if !w.resolveContacts(h, pass == 0) {
			break
		}
	}

	for _, b := range w.active {
		if !b.simulated() {
			continue
		}
		if b.pos.Y() < w.cfg.KillPlane {
			b.kill()
			continue
		}
		b.settle(h)
	}
}

func (w *World) wakeAll() {
	for _, b := range w.active {
		b.wake()
	}
}
