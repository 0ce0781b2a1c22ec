package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// Transform is the per-vertex chain from world space to screen space.
type Transform struct {
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
}

// Project maps a world-space point to screen space: x and y in pixels and z
// in [0, depth]. The three matrices are applied one at a time, in order.
// ok is false when the projected point has w == 0.
func (t Transform) Project(v math3d.Vec3) (p math3d.Vec3, ok bool) {
	h := t.View.MulVec4(math3d.Point(v))
	h = t.Projection.MulVec4(h)
	h = t.Viewport.MulVec4(h)
	return h.Dehomogenize()
}
