package render

import (
	"errors"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrDegenerateGeometry means a triangle has no usable normal. The pipeline
// skips such triangles.
var ErrDegenerateGeometry = errors.New("degenerate triangle")

// FlatShade returns the Lambertian brightness of the world-space triangle
// abc lit from direction light: the dot product of the unit face normal
// cross(b-a, c-a) with light. The result is not clamped.
func FlatShade(a, b, c, light math3d.Vec3) (float64, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.LenSq() == 0 {
		return 0, ErrDegenerateGeometry
	}
	return n.Normalize().Dot(light), nil
}

// Shade scales the channels of base by brightness, clamped to [0, 1].
// The result is opaque.
func Shade(base Color, brightness float64) Color {
	k := min(max(brightness, 0), 1)
	return Color{
		R: uint8(float64(base.R) * k),
		G: uint8(float64(base.G) * k),
		B: uint8(float64(base.B) * k),
		A: 255,
	}
}
