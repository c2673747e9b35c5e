// Package engine defines the contract between the tower simulation and the
// collaborators that draw it and simulate its debris. The simulation only
// holds opaque handles; the renderer and physics world own the objects.
package engine

import "github.com/go-gl/mathgl/mgl64"

// MeshID is an opaque handle to a renderable object owned by a Renderer.
type MeshID uint32

// BodyID is an opaque handle to a rigid body owned by a Physics world.
type BodyID uint32

// Axis indexes a component of a mgl64.Vec3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// GeometryKind selects the mesh primitive.
type GeometryKind uint8

const (
	GeometryBox GeometryKind = iota
	GeometrySphere
)

// Geometry describes the visual primitive of a mesh.
type Geometry struct {
	Kind   GeometryKind
	Size   mgl64.Vec3 // Box width, height, depth
	Radius float64    // Sphere radius
}

// BoxGeometry returns a box primitive with the given full extents.
func BoxGeometry(width, height, depth float64) Geometry {
	return Geometry{Kind: GeometryBox, Size: mgl64.Vec3{width, height, depth}}
}

// SphereGeometry returns a sphere primitive.
func SphereGeometry(radius float64) Geometry {
	return Geometry{Kind: GeometrySphere, Radius: radius}
}

// ShapeKind selects the collision primitive.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// Shape is an immutable collision primitive. Bodies never resize a shape in
// place; Physics.ReplaceShape swaps it for a new value.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
}

// BoxShape returns a box collider with the given half extents.
func BoxShape(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// SphereShape returns a sphere collider.
func SphereShape(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Bounds returns the half extents of the shape's axis-aligned bounding box.
func (s Shape) Bounds() mgl64.Vec3 {
	if s.Kind == ShapeSphere {
		return mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	}
	return s.HalfExtents
}

// Color is an HSL material color. Hue is in degrees, the rest in [0, 1].
type Color struct {
	Hue        float64
	Saturation float64
	Lightness  float64
}

// HSL builds a Color.
func HSL(hue, saturation, lightness float64) Color {
	return Color{Hue: hue, Saturation: saturation, Lightness: lightness}
}

// Renderer owns a scene graph of meshes and draws frames.
type Renderer interface {
	CreateMesh(g Geometry, c Color) MeshID
	AddToScene(id MeshID)
	RemoveFromScene(id MeshID)
	SetPosition(id MeshID, pos mgl64.Vec3)
	SetOrientation(id MeshID, q mgl64.Quat)
	SetScale(id MeshID, axis Axis, factor float64)
	Render(cam Camera)
}

// Physics owns a world of rigid bodies and advances them under gravity.
// A body with zero mass is immovable.
type Physics interface {
	CreateBody(s Shape, mass float64, pos mgl64.Vec3) BodyID
	AddToWorld(id BodyID)
	RemoveFromWorld(id BodyID)
	ReplaceShape(id BodyID, s Shape)
	SetPosition(id BodyID, pos mgl64.Vec3)
	Step(seconds float64)
	Position(id BodyID) mgl64.Vec3
	Orientation(id BodyID) mgl64.Quat
}
