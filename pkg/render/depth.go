package render

import "math"

// DepthBuffer holds one depth value per pixel. Larger values are nearer the
// viewer; a cleared buffer holds -Inf everywhere.
type DepthBuffer struct {
	Width  int
	Height int
	values []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		values: make([]float64, width*height),
	}
	d.Reset()
	return d
}

// Reset sets every entry back to -Inf.
func (d *DepthBuffer) Reset() {
	fill(d.values, math.Inf(-1))
}

// At returns the stored depth at (x, y), or -Inf if out of range.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(-1)
	}
	return d.values[y*d.Width+x]
}

// TestAndSet stores z at (x, y) if it is strictly greater than the stored
// value and reports whether it did. Equal depths keep the earlier write.
func (d *DepthBuffer) TestAndSet(x, y int, z float64) bool {
	i := y*d.Width + x
	if z > d.values[i] {
		d.values[i] = z
		return true
	}
	return false
}
