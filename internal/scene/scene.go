// Package scene draws the tower world onto a terminal screen buffer.
//
// The projection is orthographic along the camera direction. Terminal
// cells are treated as twice as tall as they are wide, matching
// core.RuntimeConfig.Aspect. Meshes are painted back to front.
package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/engine"
)

// Fill is the glyph used for solid surfaces.
const Fill = '█'

// lightDir points toward the scene's directional light.
var lightDir = mgl64.Vec3{10, 20, 0}.Normalize()

type mesh struct {
	geometry engine.Geometry
	color    engine.Color
	pos      mgl64.Vec3
	orient   mgl64.Quat
	scale    mgl64.Vec3
	visible  bool
}

// Renderer owns the meshes of one scene and paints them onto a target
// screen. It implements engine.Renderer.
type Renderer struct {
	meshes  map[engine.MeshID]*mesh
	next    engine.MeshID
	target  *core.Screen
	palette *palette
	frames  int
}

var _ engine.Renderer = (*Renderer)(nil)

// New creates an empty scene that paints onto target. Target may be nil
// and set later with SetTarget.
func New(target *core.Screen) *Renderer {
	return &Renderer{
		meshes:  make(map[engine.MeshID]*mesh),
		target:  target,
		palette: newPalette(),
	}
}

// SetTarget changes the screen subsequent frames are painted onto.
func (r *Renderer) SetTarget(s *core.Screen) {
	r.target = s
}

// Frames returns how many frames have been rendered.
func (r *Renderer) Frames() int {
	return r.frames
}

// Visible returns the number of meshes in the scene.
func (r *Renderer) Visible() int {
	n := 0
	for _, m := range r.meshes {
		if m.visible {
			n++
		}
	}
	return n
}

// CreateMesh allocates a mesh. It is not drawn until AddToScene.
func (r *Renderer) CreateMesh(g engine.Geometry, c engine.Color) engine.MeshID {
	r.next++
	r.meshes[r.next] = &mesh{
		geometry: g,
		color:    c,
		orient:   mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
	return r.next
}

// AddToScene makes a mesh visible.
func (r *Renderer) AddToScene(id engine.MeshID) {
	if m, ok := r.meshes[id]; ok {
		m.visible = true
	}
}

// RemoveFromScene drops a mesh; its handle becomes invalid.
func (r *Renderer) RemoveFromScene(id engine.MeshID) {
	delete(r.meshes, id)
}

// SetPosition moves a mesh's center.
func (r *Renderer) SetPosition(id engine.MeshID, pos mgl64.Vec3) {
	if m, ok := r.meshes[id]; ok {
		m.pos = pos
	}
}

// SetOrientation sets a mesh's rotation.
func (r *Renderer) SetOrientation(id engine.MeshID, q mgl64.Quat) {
	if m, ok := r.meshes[id]; ok {
		m.orient = q
	}
}

// SetScale sets the scale factor of one mesh axis relative to its geometry.
func (r *Renderer) SetScale(id engine.MeshID, axis engine.Axis, factor float64) {
	if m, ok := r.meshes[id]; ok {
		m.scale[axis] = factor
	}
}

// Render clears the target and paints every visible mesh as seen by cam.
func (r *Renderer) Render(cam engine.Camera) {
	r.frames++
	if r.target == nil {
		return
	}
	r.target.Clear()

	v := newView(cam, r.target.Width(), r.target.Height())

	type item struct {
		id    engine.MeshID
		m     *mesh
		depth float64
	}
	items := make([]item, 0, len(r.meshes))
	for id, m := range r.meshes {
		if !m.visible {
			continue
		}
		_, _, depth := cam.Project(m.pos)
		items = append(items, item{id: id, m: m, depth: depth})
	}
	// Farthest first; ties by creation order so frames are stable.
	sort.Slice(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth > items[j].depth
		}
		return items[i].id < items[j].id
	})

	for _, it := range items {
		switch it.m.geometry.Kind {
		case engine.GeometrySphere:
			r.drawSphere(v, it.m)
		default:
			r.drawBox(v, it.m)
		}
	}
}
