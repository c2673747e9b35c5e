package physics

import "math"

// contact is the minimum-penetration separation of two overlapping boxes.
type contact struct {
	axis  int     // Vector component of the contact normal
	sign  float64 // Direction the first body is pushed along axis
	depth float64
}

// overlap tests two bodies' bounding boxes.
func overlap(a, b *body) (contact, bool) {
	ha, hb := a.half(), b.half()
	d := a.pos.Sub(b.pos)

	best := contact{depth: math.Inf(1)}
	for k := 0; k < 3; k++ {
		pen := ha[k] + hb[k] - math.Abs(d[k])
		if pen <= 0 {
			return contact{}, false
		}
		if pen < best.depth {
			s := 1.0
			if d[k] < 0 {
				s = -1
			}
			best = contact{axis: k, sign: s, depth: pen}
		}
	}
	return best, true
}

// resolveContacts runs one separation pass over every touching pair and
// reports whether any pair needed separating. Friction and tipping are
// applied on the first pass only so they act once per sub-step.
func (w *World) resolveContacts(h float64, first bool) bool {
	touched := false
	for i, a := range w.active {
		if !a.simulated() {
			continue
		}
		for j, b := range w.active {
			if a == b || b.killed {
				continue
			}
			if b.simulated() && j < i {
				continue
			}
			c, ok := overlap(a, b)
			if !ok {
				continue
			}
			touched = true
			if b.simulated() {
				w.separateDynamic(a, b, c)
			} else {
				w.separateStatic(a, b, c, h, first)
			}
		}
	}
	return touched
}

// separateStatic pushes a out of an immovable body.
func (w *World) separateStatic(a, support *body, c contact, h float64, first bool) {
	a.pos[c.axis] += c.depth * c.sign
	if a.vel[c.axis]*c.sign < 0 {
		a.vel[c.axis] = 0
	}
	if c.axis != 1 || c.sign < 0 {
		return
	}

	a.supported = true
	if first {
		w.applyFriction(a, h)
		w.applyTipping(a, support, h)
	}
}

// separateDynamic splits the correction between two moving bodies in
// inverse proportion to their mass.
func (w *World) separateDynamic(a, b *body, c contact) {
	ia, ib := a.invMass(), b.invMass()
	wa, wb := ia/(ia+ib), ib/(ia+ib)

	a.pos[c.axis] += c.depth * c.sign * wa
	b.pos[c.axis] -= c.depth * c.sign * wb

	rel := a.vel[c.axis] - b.vel[c.axis]
	if rel*c.sign < 0 {
		common := (a.mass*a.vel[c.axis] + b.mass*b.vel[c.axis]) / (a.mass + b.mass)
		a.vel[c.axis] = common
		b.vel[c.axis] = common
	}

	if c.axis == 1 {
		if c.sign > 0 {
			a.supported = true
		} else {
			b.supported = true
		}
	}
}

// applyFriction decelerates sliding on a supporting surface.
func (w *World) applyFriction(a *body, h float64) {
	vx, vz := a.vel.X(), a.vel.Z()
	speed := math.Hypot(vx, vz)
	if speed == 0 {
		return
	}
	dv := w.cfg.Friction * math.Abs(w.cfg.Gravity) * h
	if speed <= dv {
		a.vel[0], a.vel[2] = 0, 0
		return
	}
	f := (speed - dv) / speed
	a.vel[0], a.vel[2] = vx*f, vz*f
}

// applyTipping pushes a body whose center hangs past its support's edge
// off that edge and spins it about the edge.
func (w *World) applyTipping(a, support *body, h float64) {
	hs := support.half()
	for _, k := range [...]int{0, 2} {
		d := a.pos[k] - support.pos[k]
		if math.Abs(d) <= hs[k] {
			continue
		}
		s := 1.0
		if d < 0 {
			s = -1
		}
		a.vel[k] += s * w.cfg.TipAccel * h
		if k == 0 {
			a.spin[2] -= s * w.cfg.TipSpin * h
		} else {
			a.spin[0] += s * w.cfg.TipSpin * h
		}
	}
}
