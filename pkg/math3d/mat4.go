package math3d

// Mat4 is a 4x4 matrix stored in row-major order, applied to column vectors.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// The translation of an affine transform lives in the last column (3, 7, 11).
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	}
}

// LookAt builds the view matrix for a camera at eye looking at center.
//
// The camera basis is forward = normalize(eye - center),
// right = normalize(up × forward) and up' = forward × right. The rows of the
// rotation are the basis vectors and the translation moves center to the origin,
// so the view rotates world space into camera space around center.
// eye == center or up parallel to the view direction produce a degenerate basis.
func LookAt(eye, center, up Vec3) Mat4 {
	f := eye.Sub(center).Normalize()
	r := up.Cross(f).Normalize()
	u := f.Cross(r)

	return Mat4{
		r.X, r.Y, r.Z, -r.Dot(center),
		u.X, u.Y, u.Z, -u.Dot(center),
		f.X, f.Y, f.Z, -f.Dot(center),
		0, 0, 0, 1,
	}
}

// Projection returns the pinhole projection used by the pipeline: the identity
// with m[3][2] = -1/eyeZ. Applying it leaves x, y and z alone and produces
// w = 1 - z/eyeZ, so the later divide by w shrinks distant points.
// There are no near or far planes. An eyeZ of zero yields the identity
// (orthographic view).
func Projection(eyeZ float64) Mat4 {
	m := Identity()
	if eyeZ != 0 {
		m.Set(3, 2, -1/eyeZ)
	}
	return m
}

// Viewport maps the [-1,1] cube onto the pixel rectangle (x, y, w, h) with
// depth mapped onto [0, depth]. Screen y grows downward, so NDC +1 lands on the
// top row y.
func Viewport(x, y, w, h, depth float64) Mat4 {
	return Mat4{
		w / 2, 0, 0, x + w/2,
		0, -h / 2, 0, y + h/2,
		0, 0, depth / 2, depth / 2,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec4 applies m to the homogeneous vector v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms v as a point (w=1) and drops the resulting w.
// Only meaningful for affine matrices.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).Vec3()
}

// Linear returns the upper-left 3x3 block.
func (m Mat4) Linear() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Translation extracts the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}
