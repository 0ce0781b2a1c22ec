package math3d

// Vec4 is a homogeneous point. W only has meaning inside the transform chain.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point lifts v to homogeneous coordinates with W = 1.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Dehomogenize divides X, Y and Z by W.
// ok is false when W is zero, in which case the result is the zero vector.
func (v Vec4) Dehomogenize() (p Vec3, ok bool) {
	if v.W == 0 {
		return Vec3{}, false
	}
	inv := 1 / v.W
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}, true
}

// Add returns the component-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Scale multiplies every component, W included, by k.
func (v Vec4) Scale(k float64) Vec4 {
	return Vec4{v.X * k, v.Y * k, v.Z * k, v.W * k}
}

// Dot returns the four-component dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}
