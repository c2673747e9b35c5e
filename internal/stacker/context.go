package stacker

import "fmt"

// GameContext is the mutable state of one play session. A reset replaces
// the whole value; nothing in it is cleared piecemeal.
type GameContext struct {
	Stack     []*Block  // Supported layers, base first
	Overhangs []*Block  // Falling debris, never removed during a session
	Markers   []*Marker // Decorative bonus spheres

	Autopilot      bool
	GameEnded      bool
	RobotPrecision float64 // Autopilot stop offset for the current layer
	Speed          float64 // World units per second
	Score          int
	Level          int
}

func newContext(autopilot bool, speed float64) *GameContext {
	return &GameContext{
		Autopilot: autopilot,
		Speed:     speed,
		Level:     1,
	}
}

// Top returns the active layer.
func (c *GameContext) Top() *Block {
	c.mustPlay()
	return c.Stack[len(c.Stack)-1]
}

// Previous returns the layer the active one is placed against.
func (c *GameContext) Previous() *Block {
	c.mustPlay()
	return c.Stack[len(c.Stack)-2]
}

func (c *GameContext) mustPlay() {
	if len(c.Stack) < 2 {
		panic(fmt.Sprintf("stacker: stack has %d layers, need at least 2", len(c.Stack)))
	}
}
