package stacker

import (
	"fmt"

	"github.com/vovakirdan/tui-tower/internal/engine"
)

// Axis is the horizontal direction a stack layer moves along and is cut along.
type Axis uint8

const (
	AxisNone Axis = iota // Base layer and overhangs
	AxisX
	AxisZ
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Other returns the axis the next layer moves along.
func (a Axis) Other() Axis {
	switch a {
	case AxisX:
		return AxisZ
	case AxisZ:
		return AxisX
	default:
		panic(fmt.Sprintf("stacker: axis %s has no alternate", a))
	}
}

// component maps the axis to its vector component.
func (a Axis) component() engine.Axis {
	switch a {
	case AxisX:
		return engine.AxisX
	case AxisZ:
		return engine.AxisZ
	default:
		panic(fmt.Sprintf("stacker: axis %s has no vector component", a))
	}
}

// Extent returns the block's size along axis: width for X, depth for Z.
func Extent(b *Block, axis Axis) float64 {
	if axis.component() == engine.AxisX {
		return b.Width
	}
	return b.Depth
}

// setExtent resizes the block along axis, leaving the orthogonal extent.
func setExtent(b *Block, axis Axis, v float64) {
	if axis.component() == engine.AxisX {
		b.Width = v
		return
	}
	b.Depth = v
}

// PositionAlong returns the block's center coordinate on axis.
func PositionAlong(b *Block, axis Axis) float64 {
	return b.Position[axis.component()]
}

// SetPositionAlong moves the block's logical center on axis. Handles are
// not touched; see Bridge.Drive.
func SetPositionAlong(b *Block, axis Axis, v float64) {
	b.Position[axis.component()] = v
}
