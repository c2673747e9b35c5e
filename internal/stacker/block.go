package stacker

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/engine"
)

// Mode records which representation of an entity is authoritative.
type Mode uint8

const (
	// LogicDriven entities (stack layers) are positioned by the game; the
	// core writes every move into both the mesh and the body.
	LogicDriven Mode = iota

	// PhysicsDriven entities (overhangs, markers) are positioned by the
	// physics world; the core copies body transforms into the mesh.
	PhysicsDriven
)

// Handles are the collaborator-owned objects backing one entity.
type Handles struct {
	Mesh engine.MeshID
	Body engine.BodyID
}

// Block is a tower layer or a falling overhang.
type Block struct {
	Handles
	Position mgl64.Vec3 // Center of the box
	Width    float64    // Extent on X
	Depth    float64    // Extent on Z
	Axis     Axis       // Movement axis; AxisNone for the base and overhangs
	Mode     Mode
	Mass     float64
}

// Marker is a decorative bonus sphere dropped beside an overhang.
type Marker struct {
	Handles
	Radius float64
}

// Mass computes the physics mass of a block. A block that does not fall
// has zero mass, which pins it in the physics world.
func Mass(falls bool, width, depth, originalSize, baseMass float64) float64 {
	if !falls {
		return 0
	}
	return baseMass * (width / originalSize) * (depth / originalSize)
}

// createBlock allocates the mesh and body for a new block and registers
// both with the collaborators.
func (m *Machine) createBlock(x, y, z, width, depth float64, falls bool) *Block {
	if !(width > 0) || !(depth > 0) || math.IsInf(width, 0) || math.IsInf(depth, 0) {
		panic(fmt.Sprintf("stacker: invalid block footprint %vx%v", width, depth))
	}

	h := m.cfg.World.BlockHeight
	pos := mgl64.Vec3{x, y, z}
	hue := m.cfg.Blocks.HueStart + m.cfg.Blocks.HueStep*float64(len(m.ctx.Stack))

	mesh := m.renderer.CreateMesh(engine.BoxGeometry(width, h, depth), engine.HSL(hue, 1, 0.5))
	m.renderer.SetPosition(mesh, pos)
	m.renderer.AddToScene(mesh)

	mass := Mass(falls, width, depth, m.cfg.World.OriginalSize, m.cfg.Blocks.DynamicMass)
	body := m.physics.CreateBody(blockShape(width, h, depth), mass, pos)
	m.physics.AddToWorld(body)

	mode := LogicDriven
	if falls {
		mode = PhysicsDriven
	}
	return &Block{
		Handles:  Handles{Mesh: mesh, Body: body},
		Position: pos,
		Width:    width,
		Depth:    depth,
		Mode:     mode,
		Mass:     mass,
	}
}

func blockShape(width, height, depth float64) engine.Shape {
	return engine.BoxShape(mgl64.Vec3{width / 2, height / 2, depth / 2})
}

// appendLayer places a new stack layer on top of the tower.
func (m *Machine) appendLayer(x, z, width, depth float64, axis Axis) *Block {
	y := m.cfg.World.BlockHeight * float64(len(m.ctx.Stack))
	layer := m.createBlock(x, y, z, width, depth, false)
	layer.Axis = axis
	m.ctx.Stack = append(m.ctx.Stack, layer)
	return layer
}

// appendOverhang drops a falling block at the height of the current top layer.
func (m *Machine) appendOverhang(x, z, width, depth float64) *Block {
	y := m.cfg.World.BlockHeight * float64(len(m.ctx.Stack)-1)
	overhang := m.createBlock(x, y, z, width, depth, true)
	m.ctx.Overhangs = append(m.ctx.Overhangs, overhang)
	m.dropMarker(overhang)
	return overhang
}

// dropMarker spawns the decorative sphere just above an overhang.
func (m *Machine) dropMarker(over *Block) {
	if !m.cfg.Bonus.Enabled {
		return
	}
	radius := math.Min(over.Width, over.Depth) / 4
	if radius <= 0 {
		return
	}

	pos := over.Position.Add(mgl64.Vec3{0, m.cfg.World.BlockHeight + radius, 0})
	hue := 30 + m.cfg.Blocks.HueStep*float64(len(m.ctx.Stack))

	mesh := m.renderer.CreateMesh(engine.SphereGeometry(radius), engine.HSL(hue, 1, 0.6))
	m.renderer.SetPosition(mesh, pos)
	m.renderer.AddToScene(mesh)

	body := m.physics.CreateBody(engine.SphereShape(radius), m.cfg.Blocks.DynamicMass, pos)
	m.physics.AddToWorld(body)

	m.ctx.Markers = append(m.ctx.Markers, &Marker{
		Handles: Handles{Mesh: mesh, Body: body},
		Radius:  radius,
	})
}

// release removes an entity's handles from the collaborators.
func (m *Machine) release(h Handles) {
	m.renderer.RemoveFromScene(h.Mesh)
	m.physics.RemoveFromWorld(h.Body)
}
