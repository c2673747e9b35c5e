package stacker

import "github.com/vovakirdan/tui-tower/internal/engine"

// Bridge keeps the render and physics representations of entities in step.
// Logic-driven blocks push their position into both handles; physics-driven
// entities pull their transform from the body into the mesh.
type Bridge struct {
	renderer engine.Renderer
	physics  engine.Physics
}

// NewBridge creates a bridge over the given collaborators.
func NewBridge(r engine.Renderer, p engine.Physics) Bridge {
	return Bridge{renderer: r, physics: p}
}

// Drive writes a logic-driven block's position into its mesh and body.
func (b Bridge) Drive(block *Block) {
	b.renderer.SetPosition(block.Mesh, block.Position)
	b.physics.SetPosition(block.Body, block.Position)
}

// Step advances the physics world and copies every physics-driven
// transform into its mesh.
func (b Bridge) Step(seconds float64, overhangs []*Block, markers []*Marker) {
	b.physics.Step(seconds)

	for _, o := range overhangs {
		b.pull(o.Handles)
		o.Position = b.physics.Position(o.Body)
	}
	for _, mk := range markers {
		b.pull(mk.Handles)
	}
}

func (b Bridge) pull(h Handles) {
	b.renderer.SetPosition(h.Mesh, b.physics.Position(h.Body))
	b.renderer.SetOrientation(h.Mesh, b.physics.Orientation(h.Body))
}
