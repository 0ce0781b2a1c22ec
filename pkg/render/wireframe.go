package render

import (
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// maxLineCoord bounds screen coordinates handed to the line walker. Points
// projected from near the eye plane land arbitrarily far away.
const maxLineCoord = 1 << 16

// Axis colors
var (
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 255, 0)
	ColorBlue  = RGB(0, 0, 255)
)

// Wireframe draws world-space lines through a transform. Lines are not depth
// tested.
type Wireframe struct {
	r *Rasterizer
	t Transform
}

// NewWireframe creates a wireframe drawer.
func NewWireframe(r *Rasterizer, t Transform) *Wireframe {
	return &Wireframe{r: r, t: t}
}

// DrawLine3D projects both endpoints and draws the line between them.
// Nothing is drawn if either endpoint cannot be projected.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	s1, ok1 := w.t.Project(p1)
	s2, ok2 := w.t.Project(p2)
	if !ok1 || !ok2 {
		return
	}
	w.segment(s1, s2, color)
}

// DrawTriangle draws the three edges of a screen-space triangle.
func (w *Wireframe) DrawTriangle(pts [3]math3d.Vec3, color Color) {
	for i := range pts {
		w.segment(pts[i], pts[(i+1)%3], color)
	}
}

func (w *Wireframe) segment(a, b math3d.Vec3, color Color) {
	for _, v := range [...]float64{a.X, a.Y, b.X, b.Y} {
		if !finite(v) || math.Abs(v) > maxLineCoord {
			return
		}
	}
	w.r.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Vec3{}
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}
