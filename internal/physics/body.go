package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/engine"
)

const (
	restSpeed = 0.05 // Below this a supported body counts as still
	restTime  = 1.0  // Seconds of stillness before a body rests
)

type body struct {
	id     engine.BodyID
	shape  engine.Shape
	mass   float64
	pos    mgl64.Vec3
	vel    mgl64.Vec3
	orient mgl64.Quat
	spin   mgl64.Vec3 // Angular velocity, radians per second

	inWorld   bool
	supported bool    // Touched something from above during the last sub-step
	still     float64 // Seconds spent supported and slow
	resting   bool
	killed    bool
}

func (b *body) static() bool {
	return b.mass == 0
}

func (b *body) simulated() bool {
	return !b.static() && !b.resting && !b.killed
}

func (b *body) invMass() float64 {
	if b.static() {
		return 0
	}
	return 1 / b.mass
}

// integrate applies gravity and moves the body, semi-implicit Euler.
func (b *body) integrate(h, gravity, damping float64) {
	b.vel[1] += gravity * h
	b.pos = b.pos.Add(b.vel.Mul(h))

	if b.spin.Len() > 0 {
		angle := b.spin.Len() * h
		b.orient = mgl64.QuatRotate(angle, b.spin.Normalize()).Mul(b.orient).Normalize()
		b.spin = b.spin.Mul(1 - damping*h)
	}
	b.supported = false
}

// settle puts a supported, slow body to rest once it has been still long
// enough.
func (b *body) settle(h float64) {
	if !b.supported || b.vel.Len() > restSpeed {
		b.still = 0
		return
	}
	b.still += h
	if b.still >= restTime {
		b.resting = true
		b.vel = mgl64.Vec3{}
		b.spin = mgl64.Vec3{}
	}
}

func (b *body) kill() {
	b.killed = true
	b.vel = mgl64.Vec3{}
	b.spin = mgl64.Vec3{}
}

func (b *body) wake() {
	if b.resting {
		b.resting = false
		b.still = 0
	}
}

func (b *body) half() mgl64.Vec3 {
	return b.shape.Bounds()
}
