// Package render turns meshes into pixels: camera and viewport transforms,
// line and triangle rasterization with a depth buffer, and the frame pipeline
// that drives them.
package render

import (
	"image"
	"image/color"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Framebuffer is a row-major grid of pixels. Row 0 is the top of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	fill(fb.Pixels, c)
}

// SetPixel sets a pixel at (x, y). Out of range writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black if out of range.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1), endpoints included.
// Drawing A to B plots exactly the same pixels as B to A.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	line(x0, y0, x1, y1, func(x, y int) {
		fb.SetPixel(x, y, c)
	})
}

// line runs integer Bresenham and calls plot once per pixel.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	if abs(x1-x0) < abs(y1-y0) {
		if y0 > y1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		steep(x0, y0, x1, y1, plot)
		return
	}
	if x0 > x1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	shallow(x0, y0, x1, y1, plot)
}

// shallow walks x from x0 to x1 (x0 <= x1, |dy| <= dx).
func shallow(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	derror2 := 2 * abs(y1-y0)
	ystep := sign(y1 - y0)
	error2 := 0
	y := y0
	for x := x0; x <= x1; x++ {
		plot(x, y)
		error2 += derror2
		if error2 > dx {
			y += ystep
			error2 -= 2 * dx
		}
	}
}

// steep walks y from y0 to y1 (y0 <= y1, |dx| < dy).
func steep(x0, y0, x1, y1 int, plot func(x, y int)) {
	dy := y1 - y0
	derror2 := 2 * abs(x1-x0)
	xstep := sign(x1 - x0)
	error2 := 0
	x := x0
	for y := y0; y <= y1; y++ {
		plot(x, y)
		error2 += derror2
		if error2 > dy {
			x += xstep
			error2 -= 2 * dy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// fill sets every element of s to v by doubling copies.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x, c := range row {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
