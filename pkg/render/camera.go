package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// minPolarCos keeps Orbit from pitching the eye onto the up axis, where the
// look-at basis is undefined.
const minPolarCos = 0.999

// Camera looks from Eye toward Center with Up as the approximate up direction.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	// Cached view matrix (computed on demand)
	viewMatrix math3d.Mat4
	viewDirty  bool
}

// NewCamera creates a camera.
func NewCamera(eye, center, up math3d.Vec3) *Camera {
	return &Camera{
		Eye:       eye,
		Center:    center,
		Up:        up,
		viewDirty: true,
	}
}

// SetEye moves the eye to pos.
func (c *Camera) SetEye(pos math3d.Vec3) {
	c.Eye = pos
	c.viewDirty = true
}

// SetCenter changes the point the camera looks at.
func (c *Camera) SetCenter(pos math3d.Vec3) {
	c.Center = pos
	c.viewDirty = true
}

// SetUp changes the up direction.
func (c *Camera) SetUp(up math3d.Vec3) {
	c.Up = up
	c.viewDirty = true
}

// MoveEye offsets the eye by delta.
func (c *Camera) MoveEye(delta math3d.Vec3) {
	c.SetEye(c.Eye.Add(delta))
}

// Distance returns the distance from the eye to the center.
func (c *Camera) Distance() float64 {
	return c.Eye.Sub(c.Center).Len()
}

// Orbit rotates the eye about the center: yaw around the up axis, then pitch
// around the camera's right axis (radians, positive pitch raises the eye).
// A pitch that would bring the eye onto the up axis is dropped.
func (c *Camera) Orbit(yaw, pitch float64) {
	offset := toMgl(c.Eye.Sub(c.Center))
	up := toMgl(c.Up)
	if offset.Len() == 0 || up.Len() == 0 {
		return
	}
	up = up.Normalize()

	rotated := offset
	if right := up.Cross(offset); pitch != 0 && right.Len() > 0 {
		pitched := mgl64.QuatRotate(-pitch, right.Normalize()).Rotate(offset)
		if math.Abs(pitched.Normalize().Dot(up)) < minPolarCos {
			rotated = pitched
		}
	}
	rotated = mgl64.QuatRotate(yaw, up).Rotate(rotated)

	c.SetEye(c.Center.Add(fromMgl(rotated)))
}

// Zoom scales the eye's distance from the center by factor. Non-positive
// factors are ignored.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetEye(c.Center.Add(c.Eye.Sub(c.Center).Scale(factor)))
}

// ViewMatrix returns the look-at view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Eye, c.Center, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective matrix for the current eye
// distance. After the view transform the eye sits on +Z at that distance.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Projection(c.Distance())
}

func toMgl(v math3d.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
