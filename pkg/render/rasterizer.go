package render

import (
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// minDoubleArea is the smallest doubled screen-space area a triangle may have
// before it is treated as degenerate.
const minDoubleArea = 1e-2

// degenerate is returned by Barycentric for triangles too thin to rasterize.
var degenerate = math3d.V3(-1, 1, 1)

// Rasterizer fills triangles and draws lines into a framebuffer, consulting a
// depth buffer. It may be limited to a band of rows so that several
// rasterizers can share one frame.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer

	// Rows [MinY, MaxY) are written; everything else is left alone.
	MinY, MaxY int
}

// NewRasterizer creates a rasterizer covering the whole framebuffer.
func NewRasterizer(fb *Framebuffer, depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{fb: fb, depth: depth, MinY: 0, MaxY: fb.Height}
}

// Band returns a rasterizer sharing r's buffers that only writes rows [y0, y1).
func (r *Rasterizer) Band(y0, y1 int) *Rasterizer {
	return &Rasterizer{
		fb:    r.fb,
		depth: r.depth,
		MinY:  max(y0, 0),
		MaxY:  min(y1, r.fb.Height),
	}
}

// Barycentric returns the weights of p with respect to the screen-space
// triangle abc, using only x and y. For triangles whose doubled area is below
// 1e-2 it returns (-1, 1, 1), which every inside test rejects.
func Barycentric(a, b, c, p math3d.Vec3) math3d.Vec3 {
	u := math3d.V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if math.Abs(u.Z) < minDoubleArea {
		return degenerate
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

// IsDegenerate reports whether the screen-space triangle cannot be filled:
// its doubled area is below 1e-2 or a coordinate is not finite.
func IsDegenerate(pts [3]math3d.Vec3) bool {
	if !finitePoints(pts) {
		return true
	}
	a, b, c := pts[0], pts[1], pts[2]
	area := (c.X-a.X)*(b.Y-a.Y) - (b.X-a.X)*(c.Y-a.Y)
	return math.Abs(area) < minDoubleArea
}

func finitePoints(pts [3]math3d.Vec3) bool {
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FillTriangle fills the screen-space triangle pts with a solid color. Pixels
// are sampled at integer coordinates; one is written only when its
// interpolated depth beats the depth buffer. It reports false, writing
// nothing, for degenerate triangles.
func (r *Rasterizer) FillTriangle(pts [3]math3d.Vec3, c Color) bool {
	if IsDegenerate(pts) {
		return false
	}
	a, b, v := pts[0], pts[1], pts[2]

	loX, hiX := math.Floor(min(a.X, b.X, v.X)), math.Ceil(max(a.X, b.X, v.X))
	loY, hiY := math.Floor(min(a.Y, b.Y, v.Y)), math.Ceil(max(a.Y, b.Y, v.Y))
	if hiX < 0 || loX > float64(r.fb.Width-1) || hiY < float64(r.MinY) || loY > float64(r.MaxY-1) {
		return true
	}

	// Both ends are inside the buffer before the int conversion.
	minX := int(math.Max(0, loX))
	maxX := int(math.Min(float64(r.fb.Width-1), hiX))
	minY := int(math.Max(float64(r.MinY), loY))
	maxY := int(math.Min(float64(r.MaxY-1), hiY))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := Barycentric(a, b, v, math3d.V3(float64(x), float64(y), 0))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}
			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*v.Z
			if r.depth.TestAndSet(x, y, z) {
				r.fb.Pixels[y*r.fb.Width+x] = c
			}
		}
	}
	return true
}

// DrawLine draws a line without depth testing, clipped to the rasterizer's rows.
func (r *Rasterizer) DrawLine(x0, y0, x1, y1 int, c Color) {
	line(x0, y0, x1, y1, func(x, y int) {
		if y >= r.MinY && y < r.MaxY {
			r.fb.SetPixel(x, y, c)
		}
	})
}
