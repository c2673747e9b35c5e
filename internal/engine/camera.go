package engine

import "github.com/go-gl/mathgl/mgl64"

// Camera is an orthographic camera. Its direction is fixed by LookAt; moving
// Position afterwards translates the view without turning it.
type Camera struct {
	Position   mgl64.Vec3
	Direction  mgl64.Vec3 // Unit vector the camera faces
	Up         mgl64.Vec3
	ViewWidth  float64 // World units visible horizontally
	ViewHeight float64 // World units visible vertically
}

// NewCamera places a camera at pos facing target, framed for the aspect ratio.
func NewCamera(pos, target mgl64.Vec3, viewWidth, aspect float64) Camera {
	c := Camera{
		Position:  pos,
		Up:        mgl64.Vec3{0, 1, 0},
		ViewWidth: viewWidth,
	}
	c.LookAt(target)
	c.Frame(aspect)
	return c
}

// LookAt turns the camera toward target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 0, -1}
	}
	c.Direction = dir.Normalize()
}

// Frame recomputes the visible height for a new width/height aspect ratio.
func (c *Camera) Frame(aspect float64) {
	if aspect <= 0 {
		aspect = 1
	}
	c.ViewHeight = c.ViewWidth / aspect
}

// Basis returns the camera's right and up unit vectors.
func (c Camera) Basis() (right, up mgl64.Vec3) {
	right = c.Direction.Cross(c.Up)
	if right.Len() == 0 {
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = right.Cross(c.Direction).Normalize()
	return right, up
}

// Project maps a world point to view-plane coordinates (x right, y up,
// origin at the view center) and its depth along the view direction.
func (c Camera) Project(p mgl64.Vec3) (x, y, depth float64) {
	right, up := c.Basis()
	rel := p.Sub(c.Position)
	return rel.Dot(right), rel.Dot(up), rel.Dot(c.Direction)
}
