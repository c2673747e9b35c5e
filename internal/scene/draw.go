package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Box faces as corner indices into boxCorners, with the face normal.
var boxFaces = [6]struct {
	corners [4]int
	normal  mgl64.Vec3
}{
	{[4]int{1, 3, 7, 5}, mgl64.Vec3{1, 0, 0}},
	{[4]int{0, 4, 6, 2}, mgl64.Vec3{-1, 0, 0}},
	{[4]int{2, 6, 7, 3}, mgl64.Vec3{0, 1, 0}},
	{[4]int{0, 1, 5, 4}, mgl64.Vec3{0, -1, 0}},
	{[4]int{4, 5, 7, 6}, mgl64.Vec3{0, 0, 1}},
	{[4]int{0, 2, 3, 1}, mgl64.Vec3{0, 0, -1}},
}

// boxCorners returns the eight world-space corners of a box mesh. Bit 0
// of the index selects +X, bit 1 +Y, bit 2 +Z.
func boxCorners(m *mesh) [8]mgl64.Vec3 {
	half := mgl64.Vec3{
		m.geometry.Size.X() * m.scale.X() / 2,
		m.geometry.Size.Y() * m.scale.Y() / 2,
		m.geometry.Size.Z() * m.scale.Z() / 2,
	}
	var out [8]mgl64.Vec3
	for i := range out {
		local := half
		if i&1 == 0 {
			local[0] = -local[0]
		}
		if i&2 == 0 {
			local[1] = -local[1]
		}
		if i&4 == 0 {
			local[2] = -local[2]
		}
		out[i] = m.orient.Rotate(local).Add(m.pos)
	}
	return out
}

// shade scales a material's lightness by how directly a surface faces the
// light.
func shade(lightness float64, normal mgl64.Vec3) float64 {
	diffuse := math.Max(0, normal.Dot(lightDir))
	return core.ClampF(lightness*(0.45+0.75*diffuse), 0, 1)
}

func (r *Renderer) drawBox(v view, m *mesh) {
	corners := boxCorners(m)
	var quad [4]point
	for _, f := range boxFaces {
		n := m.orient.Rotate(f.normal)
		if !v.facing(n) {
			continue
		}
		for i, c := range f.corners {
			quad[i] = v.project(corners[c])
		}
		hex := r.palette.hex(m.color.Hue, m.color.Saturation, shade(m.color.Lightness, n))
		r.fillPolygon(v, quad[:], hex)
	}
}

func (r *Renderer) fillPolygon(v view, pts []point, hex string) {
	x0, y0, x1, y1 := v.bounds(pts)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(pts, point{float64(x) + 0.5, float64(y) + 0.5}) {
				r.target.SetCell(x, y, core.Cell{Rune: Fill, Hex: hex})
			}
		}
	}
}

// drawSphere paints a disc, lit from above.
func (r *Renderer) drawSphere(v view, m *mesh) {
	if v.colUnits == 0 || v.rowUnits == 0 {
		return
	}
	c := v.project(m.pos)
	radius := m.geometry.Radius * m.scale.X()
	rx, ry := radius/v.colUnits, radius/v.rowUnits
	if rx <= 0 || ry <= 0 {
		return
	}

	lit := r.palette.hex(m.color.Hue, m.color.Saturation, shade(m.color.Lightness, lightDir))
	dark := r.palette.hex(m.color.Hue, m.color.Saturation, shade(m.color.Lightness, mgl64.Vec3{}))

	// Always cover at least the cell under the center.
	x0, x1 := int(math.Floor(c.x-rx)), int(math.Ceil(c.x+rx))
	y0, y1 := int(math.Floor(c.y-ry)), int(math.Ceil(c.y+ry))
	drawn := false
	for y := max(0, y0); y <= min(v.rows-1, y1); y++ {
		for x := max(0, x0); x <= min(v.cols-1, x1); x++ {
			dx := (float64(x) + 0.5 - c.x) / rx
			dy := (float64(y) + 0.5 - c.y) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			hex := lit
			if dy > 0 {
				hex = dark
			}
			r.target.SetCell(x, y, core.Cell{Rune: Fill, Hex: hex})
			drawn = true
		}
	}
	if !drawn {
		r.target.SetCell(int(math.Floor(c.x)), int(math.Floor(c.y)), core.Cell{Rune: '●', Hex: lit})
	}
}
