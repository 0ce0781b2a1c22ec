// Package models loads triangle meshes for tinyrender.
package models

import (
	"fmt"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Mesh is an indexed triangle mesh. It is read-only once a loader returns it.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	// Normals holds OBJ vn lines as listed. For GLB input it is either empty or
	// parallel to Positions, zero where a primitive had no NORMAL. Flat
	// shading ignores it.
	Normals   []math3d.Vec3
	Faces     []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle given by three 0-based indices into Mesh.Positions.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a position and returns its index.
func (m *Mesh) AddVertex(p math3d.Vec3) int {
	m.Positions = append(m.Positions, p)
	return len(m.Positions) - 1
}

// AddFace appends a triangle. Indices are not checked until Validate.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
}

// Validate checks that every face index lies in [0, VertexCount()).
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: vertex %d of %d: %w", i, idx+1, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// GetVertex returns the position of vertex i.
// Implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Positions[i]
}

// GetFace returns the vertex indices of face i.
// Implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// Transform applies an affine matrix to every position and normal.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Positions {
		m.Positions[i] = mat.MulPoint(m.Positions[i])
	}
	lin := mat.Linear()
	for i := range m.Normals {
		m.Normals[i] = lin.MulVec3(m.Normals[i]).Normalize()
	}
	m.CalculateBounds()
}

// FitUnit centers the mesh on the origin and scales it so its largest
// dimension spans [-1, 1].
func (m *Mesh) FitUnit() {
	m.CalculateBounds()
	size := m.Size()
	maxDim := max(size.X, size.Y, size.Z)
	if maxDim == 0 {
		return
	}
	scale := 2 / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Positions: make([]math3d.Vec3, len(m.Positions)),
		Normals:   make([]math3d.Vec3, len(m.Normals)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Positions, m.Positions)
	copy(clone.Normals, m.Normals)
	copy(clone.Faces, m.Faces)
	return clone
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
