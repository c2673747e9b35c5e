package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/engine"
)

// view maps world points to screen cells for one frame.
type view struct {
	cam        engine.Camera
	right, up  mgl64.Vec3
	cols, rows int
	colUnits   float64 // World units per column
	rowUnits   float64 // World units per row
}

func newView(cam engine.Camera, cols, rows int) view {
	right, up := cam.Basis()
	v := view{cam: cam, right: right, up: up, cols: cols, rows: rows}
	if cols > 0 {
		v.colUnits = cam.ViewWidth / float64(cols)
	}
	if rows > 0 {
		v.rowUnits = cam.ViewHeight / float64(rows)
	}
	return v
}

// point is a position in fractional cell coordinates.
type point struct {
	x, y float64
}

// project returns the fractional cell a world point lands on.
func (v view) project(p mgl64.Vec3) point {
	if v.colUnits == 0 || v.rowUnits == 0 {
		return point{}
	}
	rel := p.Sub(v.cam.Position)
	return point{
		x: float64(v.cols)/2 + rel.Dot(v.right)/v.colUnits,
		y: float64(v.rows)/2 - rel.Dot(v.up)/v.rowUnits,
	}
}

// facing reports whether a surface with world normal n faces the camera.
func (v view) facing(n mgl64.Vec3) bool {
	return n.Dot(v.cam.Direction) < 0
}

// bounds clamps a polygon's bounding box to the screen.
func (v view) bounds(pts []point) (x0, y0, x1, y1 int) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	x0 = max(0, int(math.Floor(minX)))
	y0 = max(0, int(math.Floor(minY)))
	x1 = min(v.cols-1, int(math.Ceil(maxX)))
	y1 = min(v.rows-1, int(math.Ceil(maxY)))
	return x0, y0, x1, y1
}

// inside tests a point against a convex polygon of either winding.
func inside(pts []point, p point) bool {
	var pos, neg bool
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		cross := (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}
