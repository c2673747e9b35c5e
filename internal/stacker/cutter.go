package stacker

import "fmt"

// Cut is the measured alignment of the active layer against the one below.
type Cut struct {
	Axis         Axis
	Size         float64 // Extent of the active layer along Axis
	Delta        float64 // Active minus previous position along Axis
	OverhangSize float64 // |Delta|
	Overlap      float64 // Size - OverhangSize
}

// Measure computes the cut of top against prev along top's movement axis.
func Measure(top, prev *Block) Cut {
	axis := top.Axis
	size := Extent(top, axis)
	if !(size > 0) || !(Extent(prev, axis) > 0) {
		panic(fmt.Sprintf("stacker: non-positive extent reached the cutter (%v, %v)", size, Extent(prev, axis)))
	}

	delta := PositionAlong(top, axis) - PositionAlong(prev, axis)
	overhang := abs(delta)
	return Cut{
		Axis:         axis,
		Size:         size,
		Delta:        delta,
		OverhangSize: overhang,
		Overlap:      size - overhang,
	}
}

// Hit reports whether any part of the layer rests on the one below.
// Touching edges (zero overlap) is a miss.
func (c Cut) Hit() bool {
	return c.Overlap > 0
}

// Shift is the offset of the cut-off remainder's center from the trimmed
// layer's center.
func (c Cut) Shift() float64 {
	return (c.Overlap/2 + c.OverhangSize/2) * sign(c.Delta)
}

// trim shrinks the active layer to the overlap and recenters it over the
// supported region. The physics shape is replaced, never resized.
func (m *Machine) trim(top *Block, cut Cut) {
	setExtent(top, cut.Axis, cut.Overlap)
	SetPositionAlong(top, cut.Axis, PositionAlong(top, cut.Axis)-cut.Delta/2)

	m.renderer.SetScale(top.Mesh, cut.Axis.component(), cut.Overlap/cut.Size)
	m.bridge.Drive(top)
	m.physics.ReplaceShape(top.Body, blockShape(top.Width, m.cfg.World.BlockHeight, top.Depth))
}

// split cuts the active layer against the previous one. On a hit the
// remainder falls, the score advances and the next layer starts off-stage;
// otherwise the whole layer falls and the game ends.
func (m *Machine) split() (Cut, bool) {
	if m.ctx.GameEnded {
		return Cut{}, false
	}

	top := m.ctx.Top()
	cut := Measure(top, m.ctx.Previous())
	if !cut.Hit() {
		m.logger.Debug("missed", "axis", cut.Axis, "delta", cut.Delta, "size", cut.Size)
		m.miss()
		return cut, false
	}

	m.trim(top, cut)

	if cut.OverhangSize > 0 {
		width, depth := top.Width, top.Depth
		if cut.Axis == AxisX {
			width = cut.OverhangSize
		} else {
			depth = cut.OverhangSize
		}
		pos := top.Position
		pos[cut.Axis.component()] += cut.Shift()
		m.appendOverhang(pos.X(), pos.Z(), width, depth)
	}

	m.advanceScore()
	m.logger.Debug("placed",
		"score", m.ctx.Score,
		"axis", cut.Axis,
		"delta", cut.Delta,
		"overlap", cut.Overlap,
	)

	nextX, nextZ := m.cfg.World.StartOffset, m.cfg.World.StartOffset
	if cut.Axis == AxisX {
		nextX = top.Position.X()
	} else {
		nextZ = top.Position.Z()
	}
	m.appendLayer(nextX, nextZ, top.Width, top.Depth, cut.Axis.Other())
	return cut, true
}

// advanceScore counts the placed layer and levels up on every multiple of
// the configured interval.
func (m *Machine) advanceScore() {
	m.ctx.Score = len(m.ctx.Stack) - 1
	m.ui.SetScoreText(m.ctx.Score)

	if m.ctx.Score > 0 && m.ctx.Score%m.cfg.Speed.LevelEvery == 0 {
		m.ctx.Speed += m.cfg.Speed.Increment
		m.ctx.Level++
		m.ui.SetLevelText(m.ctx.Level)
		m.logger.Info("level up", "level", m.ctx.Level, "speed", m.ctx.Speed)
	}
}

// miss drops the whole active layer and ends the game.
func (m *Machine) miss() {
	top := m.ctx.Top()
	m.appendOverhang(top.Position.X(), top.Position.Z(), top.Width, top.Depth)
	m.release(top.Handles)
	m.ctx.Stack = m.ctx.Stack[:len(m.ctx.Stack)-1]

	m.ctx.GameEnded = true
	m.endedFor = 0
	if !m.ctx.Autopilot {
		m.ui.ShowResults(true)
	}
	m.logger.Info("game over", "score", m.ctx.Score, "level", m.ctx.Level, "autopilot", m.ctx.Autopilot)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
